package cue

import "path"

// Location is the resolved two-level library path for a category:
// the class folder ("Sound_Effects" or "Music") and the category folder
// (the category name verbatim). Locations are derived per detection,
// never stored durably.
type Location struct {
	ClassFolder    string
	CategoryFolder string
}

// Path returns the slash-joined relative path of the location inside
// the library root, suitable for fs.FS lookups.
func (l Location) Path() string {
	return path.Join(l.ClassFolder, l.CategoryFolder)
}

// String renders the location for logs and the status line.
func (l Location) String() string {
	return l.ClassFolder + "/" + l.CategoryFolder
}

// Resolve maps a category name to its library location. Resolution is
// total: it never fails, even for categories with no backing directory
// (that failure surfaces later, at clip selection). Categories not
// registered in the sound-effect class resolve to the Music folder,
// including brand-new categories created by AddPhrases without an
// explicit class.
func (v *Vocabulary) Resolve(categoryName string) Location {
	return Location{
		ClassFolder:    v.ClassOf(categoryName).Folder(),
		CategoryFolder: categoryName,
	}
}

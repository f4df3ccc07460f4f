// Package pathutil provides path and identifier helpers shared by the
// ramldoc packages.
//
// [PathBuilder] builds accessor paths such as
// "resources[0].methods[2].description" with push/pop semantics, so a
// recursive traversal only materializes the string when it is needed:
//
//	path := pathutil.Get()
//	defer pathutil.Put(path)
//
//	path.Push("resources")
//	path.PushIndex(0)
//	// ... recurse ...
//	path.Pop()
//	path.Pop()
//
// [UniqueID] and [Anchor] derive filesystem and fragment safe identifiers
// from resource URLs and link targets.
//
// [SanitizeOutputPath] and [WithinRoot] guard file writes and !include reads
// against symlinks and directory traversal.
package pathutil

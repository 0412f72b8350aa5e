package models

// File describes a binary form field (avatar, observation photo) the way the
// device pickers hand it over: where it lives, what it is, what to call it.
//
// URI may be a plain path or a file:// URL. Empty MimeType and Filename are
// filled in when the multipart body is built.
type File struct {
	URI      string
	MimeType string
	Filename string
}

package filestore

import (
	"path/filepath"
	"strings"
)

// Common MIME content types for file operations.
const (
	// Text and data.
	ContentTypeText = "text/plain"
	ContentTypeCSV  = "text/csv"
	ContentTypeTSV  = "text/tab-separated-values"
	ContentTypeHTML = "text/html"
	ContentTypeJSON = "application/json"
	ContentTypeXML  = "application/xml"
	ContentTypeYAML = "application/x-yaml"

	// Documents.
	ContentTypePDF = "application/pdf"
	ContentTypeRTF = "application/rtf"

	// Microsoft Office.
	ContentTypeDOC  = "application/msword"
	ContentTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	ContentTypeXLS  = "application/vnd.ms-excel"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypePPT  = "application/vnd.ms-powerpoint"
	ContentTypePPTX = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

	// OpenDocument.
	ContentTypeODT = "application/vnd.oasis.opendocument.text"
	ContentTypeODS = "application/vnd.oasis.opendocument.spreadsheet"

	// Images.
	ContentTypeJPEG = "image/jpeg"
	ContentTypePNG  = "image/png"
	ContentTypeGIF  = "image/gif"
	ContentTypeSVG  = "image/svg+xml"
	ContentTypeWebP = "image/webp"

	// Archives.
	ContentTypeZIP  = "application/zip"
	ContentTypeRAR  = "application/vnd.rar"
	ContentType7Z   = "application/x-7z-compressed"
	ContentTypeTAR  = "application/x-tar"
	ContentTypeGZIP = "application/gzip"

	// Fallback for unknown extensions.
	ContentTypeOctetStream = "application/octet-stream"
)

// contentTypeByExt maps lowercase file extensions to MIME types.
var contentTypeByExt = map[string]string{
	".txt":  ContentTypeText,
	".log":  ContentTypeText,
	".csv":  ContentTypeCSV,
	".tsv":  ContentTypeTSV,
	".html": ContentTypeHTML,
	".htm":  ContentTypeHTML,
	".json": ContentTypeJSON,
	".xml":  ContentTypeXML,
	".yaml": ContentTypeYAML,
	".yml":  ContentTypeYAML,
	".pdf":  ContentTypePDF,
	".rtf":  ContentTypeRTF,
	".doc":  ContentTypeDOC,
	".docx": ContentTypeDOCX,
	".xls":  ContentTypeXLS,
	".xlsx": ContentTypeXLSX,
	".ppt":  ContentTypePPT,
	".pptx": ContentTypePPTX,
	".odt":  ContentTypeODT,
	".ods":  ContentTypeODS,
	".jpg":  ContentTypeJPEG,
	".jpeg": ContentTypeJPEG,
	".png":  ContentTypePNG,
	".gif":  ContentTypeGIF,
	".svg":  ContentTypeSVG,
	".webp": ContentTypeWebP,
	".zip":  ContentTypeZIP,
	".rar":  ContentTypeRAR,
	".7z":   ContentType7Z,
	".tar":  ContentTypeTAR,
	".gz":   ContentTypeGZIP,
}

// ResolveContentType maps a file name to a MIME type by its extension.
// Matching is case-insensitive. Unknown or missing extensions resolve to
// application/octet-stream; the function never fails.
func ResolveContentType(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ct, ok := contentTypeByExt[ext]; ok {
		return ct
	}
	return ContentTypeOctetStream
}

package filter

import "strings"

// Preset names a bundle of extensions that additively extends a Config's
// include or exclude extension lists.
type Preset int

const (
	PresetNoResources Preset = iota
	PresetNoImages
	PresetOnlyJs
	PresetOnlyStyle
	PresetNoFonts
	PresetNoDocuments
	PresetNoVideos
	PresetOnlyFonts
	PresetOnlyDocuments
	PresetOnlyVideos
	PresetOnlyImages
)

// Normative extension tables, catalogued from the reference implementation.
var (
	imageExtensions = []string{
		"png", "jpg", "jpeg", "gif", "svg", "webp", "bmp", "ico", "tiff", "tif", "heic", "heif", "raw",
		"psd", "ai", "eps", "avif", "jfif", "jp2", "jpx", "apng", "cr2", "nef", "orf", "arw", "dng",
		"pgm", "pbm", "ppm", "pnm", "exr", "xcf", "pcx", "tga", "emf", "wmf", "jxr", "hdp",
		"wdp", "cur", "dcm", "wbmp", "j2k", "art", "jng", "3fr", "ari", "srf", "sr2", "bay", "crw",
		"kdc", "erf", "mrw", "rw2", "pef", "dicom", "djvu", "fpx", "hdr", "mng", "ora", "pic", "rgb",
		"rgba", "xbm", "xpm", "dpx", "fits", "flif", "img", "mpo", "psb",
	}
	fontExtensions = []string{
		"ttf", "otf", "woff", "woff2", "eot", "fon", "fnt", "svg", "ttc", "dfont", "pfa", "pfb",
	}
	documentExtensions = []string{
		"pdf", "doc", "docx", "xls", "xlsx", "ppt", "pptx", "txt", "csv", "rtf", "odt", "ods", "odp",
		"epub", "mobi", "azw3", "fb2", "djvu", "epub3", "xps",
	}
	audioExtensions = []string{
		"mp3", "wav", "flac", "aac", "ogg", "wma", "m4a", "opus", "aiff", "alac", "dsd", "dff", "dsf",
		"pcm", "aifc", "au", "snd", "caf", "ra", "ram",
	}
	videoExtensions = []string{
		"mp4", "mkv", "avi", "mov", "wmv", "flv", "webm", "mpeg", "mpg", "3gp", "3g2", "m4v", "f4v",
		"f4p", "f4a", "f4b", "asf", "rmvb", "rm", "dat", "ts", "vob",
	}
	jsExtensions = []string{
		"js", "ts", "jsx", "tsx", "mjs", "cjs", "vue", "json", "coffee", "es6", "es", "svelte",
		"astro", "njk", "map",
	}
	styleExtensions = []string{
		"css", "scss", "sass", "less", "stylus", "postcss", "pcss", "cssm", "cssx", "cssb",
	}
)

// ParsePreset maps a --preset string onto a Preset. Both singular and
// plural spellings are accepted for the "no-*" family.
func ParsePreset(s string) (Preset, bool) {
	switch strings.ToLower(s) {
	case "no-resource", "no-resources":
		return PresetNoResources, true
	case "no-image", "no-images":
		return PresetNoImages, true
	case "no-font", "no-fonts":
		return PresetNoFonts, true
	case "no-document", "no-documents":
		return PresetNoDocuments, true
	case "no-video", "no-videos":
		return PresetNoVideos, true
	case "only-js":
		return PresetOnlyJs, true
	case "only-style", "only-styles":
		return PresetOnlyStyle, true
	case "only-fonts":
		return PresetOnlyFonts, true
	case "only-documents":
		return PresetOnlyDocuments, true
	case "only-videos":
		return PresetOnlyVideos, true
	case "only-images":
		return PresetOnlyImages, true
	default:
		return 0, false
	}
}

// ExcludeExtensions returns the extensions this preset contributes to an
// exclude-extension list.
func (p Preset) ExcludeExtensions() []string {
	switch p {
	case PresetNoResources:
		all := make([]string, 0, 256)
		all = append(all, imageExtensions...)
		all = append(all, fontExtensions...)
		all = append(all, documentExtensions...)
		all = append(all, audioExtensions...)
		all = append(all, videoExtensions...)
		all = append(all, jsExtensions...)
		all = append(all, styleExtensions...)
		return all
	case PresetNoImages:
		return cloneStrings(imageExtensions)
	case PresetNoFonts:
		return cloneStrings(fontExtensions)
	case PresetNoDocuments:
		return cloneStrings(documentExtensions)
	case PresetNoVideos:
		return cloneStrings(videoExtensions)
	default:
		return nil
	}
}

// IncludeExtensions returns the extensions this preset contributes to an
// include-extension list. Every "only-*" preset sets include-extensions to
// its bundle and leaves exclude-extensions untouched.
func (p Preset) IncludeExtensions() []string {
	switch p {
	case PresetOnlyJs:
		return cloneStrings(jsExtensions)
	case PresetOnlyStyle:
		return cloneStrings(styleExtensions)
	case PresetOnlyFonts:
		return cloneStrings(fontExtensions)
	case PresetOnlyDocuments:
		return cloneStrings(documentExtensions)
	case PresetOnlyVideos:
		return cloneStrings(videoExtensions)
	case PresetOnlyImages:
		return cloneStrings(imageExtensions)
	default:
		return nil
	}
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

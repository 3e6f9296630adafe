package tools

import "runtime"

// definition contains the probing metadata for a tool kind.
type definition struct {
	displayName string
	envVar      string
	executables []string
	versionArgs []string
}

var toolDefinitions = map[Kind]definition{
	KindImage: {
		displayName: "ImageMagick",
		envVar:      "FILEFORGE_MAGICK_PATH",
		executables: []string{executableName("magick"), executableName("convert")},
		versionArgs: []string{"-version"},
	},
	KindMedia: {
		displayName: "FFmpeg",
		envVar:      "FILEFORGE_FFMPEG_PATH",
		executables: []string{executableName("ffmpeg")},
		versionArgs: []string{"-version"},
	},
	KindMarkup: {
		displayName: "Pandoc",
		envVar:      "FILEFORGE_PANDOC_PATH",
		executables: []string{executableName("pandoc")},
		versionArgs: []string{"--version"},
	},
	KindOffice: {
		displayName: "LibreOffice",
		envVar:      "FILEFORGE_SOFFICE_PATH",
		executables: []string{executableName("soffice"), executableName("libreoffice")},
		versionArgs: []string{"--version"},
	},
}

func executableName(base string) string {
	if runtime.GOOS == "windows" {
		return base + ".exe"
	}
	return base
}

package tools

import (
	"fmt"
	"runtime"
)

func installHints(kind Kind) []string {
	switch runtime.GOOS {
	case "darwin":
		switch kind {
		case KindImage:
			return []string{"Install ImageMagick via Homebrew: brew install imagemagick"}
		case KindMedia:
			return []string{"Install FFmpeg via Homebrew: brew install ffmpeg"}
		case KindMarkup:
			return []string{"Install Pandoc via Homebrew: brew install pandoc"}
		case KindOffice:
			return []string{"Install LibreOffice via Homebrew: brew install --cask libreoffice"}
		}
	case "linux":
		switch kind {
		case KindImage:
			return []string{"Install ImageMagick with your distro package manager, e.g. sudo apt install imagemagick"}
		case KindMedia:
			return []string{"Install FFmpeg with your distro package manager, e.g. sudo apt install ffmpeg"}
		case KindMarkup:
			return []string{"Install Pandoc with your distro package manager, e.g. sudo apt install pandoc"}
		case KindOffice:
			return []string{"Install LibreOffice with your distro package manager, e.g. sudo apt install libreoffice"}
		}
	case "windows":
		switch kind {
		case KindImage:
			return []string{"Install ImageMagick via winget: winget install ImageMagick.ImageMagick"}
		case KindMedia:
			return []string{
				"Install FFmpeg via winget: winget install Gyan.FFmpeg",
				"or via Chocolatey: choco install ffmpeg",
			}
		case KindMarkup:
			return []string{"Install Pandoc via winget: winget install JohnMacFarlane.Pandoc"}
		case KindOffice:
			return []string{"Install LibreOffice via winget: winget install TheDocumentFoundation.LibreOffice"}
		}
	}
	return []string{fmt.Sprintf("Install %s using your platform's package manager", kind.DisplayName())}
}

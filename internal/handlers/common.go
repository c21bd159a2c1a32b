package handlers

import (
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/ossiecodes/mingle/internal/services"
	"github.com/ossiecodes/mingle/pkg/media"
)

var devMode bool

// SetDevMode controls whether internal error detail reaches clients.
func SetDevMode(dev bool) { devMode = dev }

// translate maps an engine error onto the transport's status codes. This
// is the only place that translation happens.
func translate(err error) *echo.HTTPError {
	switch services.KindOf(err) {
	case services.KindInvalidInput:
		return echo.NewHTTPError(http.StatusBadRequest, services.MessageOf(err))
	case services.KindNotFound:
		return echo.NewHTTPError(http.StatusNotFound, services.MessageOf(err))
	case services.KindConflict:
		return echo.NewHTTPError(http.StatusConflict, services.MessageOf(err))
	case services.KindForbidden:
		return echo.NewHTTPError(http.StatusForbidden, services.MessageOf(err))
	default:
		message := "Server error."
		if devMode {
			message = err.Error()
		}
		return echo.NewHTTPError(http.StatusInternalServerError, message)
	}
}

// saveUpload stores an optional multipart file and returns its media
// reference. A missing file yields an empty reference, not an error.
func saveUpload(c echo.Context, field string, kind media.Kind, store media.Store) (string, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return "", nil
	}
	return storeFile(fileHeader, kind, store)
}

func storeFile(fileHeader *multipart.FileHeader, kind media.Kind, store media.Store) (string, error) {
	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") && !strings.HasPrefix(contentType, "video/") {
		return "", echo.NewHTTPError(http.StatusBadRequest, "Only image and video files are allowed.")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "File upload error.")
	}
	defer src.Close()

	reference, err := store.Save(kind, fileHeader.Filename, src)
	if err != nil {
		return "", echo.NewHTTPError(http.StatusInternalServerError, "File upload error.")
	}
	return reference, nil
}

package web

import (
	"fmt"

	"github.com/nconklindev/zempic/internal/config"
	"github.com/nconklindev/zempic/internal/slimmer"
	"github.com/nconklindev/zempic/internal/web/templates"

	"github.com/a-h/templ"
)

// IndexPage renders the upload form with the configured export defaults.
func IndexPage(export config.ExportConfig, maxSize int64) templ.Component {
	format, err := slimmer.ParseFormat(export.DefaultFormat)
	if err != nil {
		format = slimmer.FormatCSV
	}

	return templates.Index(templates.IndexData{
		MaxSize:     fmt.Sprintf("%d MiB", maxSize>>20),
		DefaultName: export.DefaultName,
		Excel:       format == slimmer.FormatExcel,
	})
}

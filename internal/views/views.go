package views

import (
	"embed"
	"emogo-service/internal/models"
	"html/template"
	"io"
)

//go:embed templates/data.html
var templatesFS embed.FS

// DataPage is the view model of the /data listing.
type DataPage struct {
	Title string
	*models.Snapshot
}

type Renderer struct {
	data *template.Template
}

// NewRenderer parses the listing template from path, or the embedded
// copy when path is empty.
func NewRenderer(path string) (*Renderer, error) {
	var (
		t   *template.Template
		err error
	)
	if path != "" {
		t, err = template.ParseFiles(path)
	} else {
		t, err = template.ParseFS(templatesFS, "templates/data.html")
	}
	if err != nil {
		return nil, err
	}
	return &Renderer{data: t}, nil
}

func (r *Renderer) RenderData(w io.Writer, page DataPage) error {
	return r.data.Execute(w, page)
}

package page

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded page templates.
func Templates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}

// Install attaches the page templates to r and mounts GET /.
func Install(r *gin.Engine) error {
	tmpl, err := Templates()
	if err != nil {
		return err
	}
	r.SetHTMLTemplate(tmpl)
	r.GET("/", index)
	return nil
}

// The page carries no server-side data; it loads everything from /api/*.
func index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{"Title": "Portfolio"})
}

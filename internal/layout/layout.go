package layout

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/richxcame/ride-hailing-web/pkg/common"
	"github.com/richxcame/ride-hailing-web/pkg/i18n"
	"github.com/richxcame/ride-hailing-web/pkg/logger"
)

//go:embed templates
var templateFiles embed.FS

//go:embed static
var staticFiles embed.FS

// PageProps are the display properties of PageContainer
type PageProps struct {
	Title       string
	Description string
	// Theme is the value of the data-theme attribute; empty means the
	// renderer's current theme.
	Theme   string
	Content template.HTML
}

// CardProps are the display properties of BlankCard
type CardProps struct {
	Content template.HTML
}

// Renderer renders the page shell, cards and page content
type Renderer struct {
	tmpl  *template.Template
	theme func() string
}

// NewRenderer parses the embedded templates. theme supplies the current
// theme for pages that do not set one.
func NewRenderer(theme func() string) (*Renderer, error) {
	r := &Renderer{theme: theme}

	tmpl, err := template.New("layout").Funcs(template.FuncMap{
		"card":  r.card,
		"money": i18n.FormatAmount,
	}).ParseFS(templateFiles, "templates/*.html", "templates/pages/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout templates: %w", err)
	}
	r.tmpl = tmpl

	return r, nil
}

// PageContainer renders the document shell around props.Content
func (r *Renderer) PageContainer(props PageProps) (template.HTML, error) {
	if props.Theme == "" && r.theme != nil {
		props.Theme = r.theme()
	}
	return r.execute("page_container", props)
}

// BlankCard renders the card container around props.Content
func (r *Renderer) BlankCard(props CardProps) (template.HTML, error) {
	return r.execute("blank_card", props)
}

// Content renders the content template of a named page
func (r *Renderer) Content(page string, data interface{}) (template.HTML, error) {
	return r.execute("content_"+page, data)
}

// Page writes a complete page: the named page content inside PageContainer
func (r *Renderer) Page(w io.Writer, page string, props PageProps, data interface{}) error {
	content, err := r.Content(page, data)
	if err != nil {
		return err
	}
	props.Content = content

	html, err := r.PageContainer(props)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, string(html))
	return err
}

// HTML renders a page into the response. Rendering is done before anything
// is written so a template failure still produces a clean 500.
func (r *Renderer) HTML(c *gin.Context, status int, page string, props PageProps, data interface{}) {
	var buf bytes.Buffer
	if err := r.Page(&buf, page, props, data); err != nil {
		logger.WithContext(c.Request.Context()).Error("failed to render page",
			zap.String("page", page),
			zap.Error(err),
		)
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

// Error renders err as an error page with the status of its AppError
func (r *Renderer) Error(c *gin.Context, err error, props PageProps) {
	status := http.StatusInternalServerError
	message := "Please try again later."

	var appErr *common.AppError
	if errors.As(err, &appErr) {
		status = appErr.Code
		message = appErr.Message
	}

	r.HTML(c, status, "error", props, struct {
		Code    int
		Message string
	}{Code: status, Message: message})
}

// Static returns the embedded stylesheet and scripts
func Static() fs.FS {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return staticFiles
	}
	return sub
}

// card executes a named template and wraps the result in BlankCard
func (r *Renderer) card(name string, data interface{}) (template.HTML, error) {
	inner, err := r.execute(name, data)
	if err != nil {
		return "", err
	}
	return r.BlankCard(CardProps{Content: inner})
}

func (r *Renderer) execute(name string, data interface{}) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	// output of html/template is escaped already
	return template.HTML(buf.String()), nil
}

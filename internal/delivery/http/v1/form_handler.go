package v1

import (
	"io"
	"net/http"

	"go-forms-gateway/internal/domain"
	"go-forms-gateway/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// FormHandler exposes the submission pipeline to the site forms.
type FormHandler struct {
	formUC         domain.FormUsecase
	contactSubject string
	applySubject   string
}

// NewFormHandler registers the form routes (public, no auth required)
func NewFormHandler(public *gin.RouterGroup, formUC domain.FormUsecase, contactSubject, applySubject string) {
	handler := &FormHandler{
		formUC:         formUC,
		contactSubject: contactSubject,
		applySubject:   applySubject,
	}

	public.POST("/contact", handler.SubmitContact)
	public.POST("/apply", handler.SubmitApplication)
}

// SubmitContact relays a text-only form. Accepts a JSON object of string
// fields or a classic form-encoded body. The response body is always the
// uniform submission result; the UI branches on its success flag alone.
func (h *FormHandler) SubmitContact(c *gin.Context) {
	fields, err := textFields(c)
	if err != nil {
		c.Error(apperror.BadRequest("could not parse form fields"))
		return
	}

	result := h.formUC.Submit(c.Request.Context(), c.ClientIP(), fields, domain.SubmitOptions{
		Subject: h.contactSubject,
	})
	c.JSON(http.StatusOK, result)
}

// SubmitApplication relays a multipart form carrying CV attachments under
// the "cv" field.
func (h *FormHandler) SubmitApplication(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.Error(apperror.BadRequest("expected a multipart form"))
		return
	}

	fields := make(map[string]string, len(form.Value))
	for k, vs := range form.Value {
		if len(vs) > 0 {
			fields[k] = vs[0]
		}
	}

	files := make([]domain.FileRef, 0, len(form.File["cv"]))
	for _, fh := range form.File["cv"] {
		if fh.Size == 0 {
			continue
		}
		f, err := fh.Open()
		if err != nil {
			c.Error(apperror.BadRequest("could not read attachment"))
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			c.Error(apperror.BadRequest("could not read attachment"))
			return
		}
		files = append(files, domain.FileRef{
			Name:        fh.Filename,
			Size:        fh.Size,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	result := h.formUC.SubmitWithFiles(c.Request.Context(), c.ClientIP(), fields, files, domain.SubmitOptions{
		Subject: h.applySubject,
	})
	c.JSON(http.StatusOK, result)
}

// textFields extracts string fields from a JSON body or a form-encoded one.
// Non-string JSON values (the honeypot posts a boolean) are dropped.
func textFields(c *gin.Context) (map[string]string, error) {
	if c.ContentType() == "application/json" {
		var raw map[string]interface{}
		if err := c.ShouldBindJSON(&raw); err != nil {
			return nil, err
		}
		fields := make(map[string]string, len(raw))
		for k, v := range raw {
			if s, ok := v.(string); ok {
				fields[k] = s
			}
		}
		return fields, nil
	}

	if err := c.Request.ParseMultipartForm(32 << 20); err != nil && err != http.ErrNotMultipart {
		if err := c.Request.ParseForm(); err != nil {
			return nil, err
		}
	}
	fields := make(map[string]string, len(c.Request.PostForm))
	for k, vs := range c.Request.PostForm {
		if len(vs) > 0 {
			fields[k] = vs[0]
		}
	}
	return fields, nil
}

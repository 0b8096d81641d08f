package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"risk-assessor/internal/database"
	"risk-assessor/internal/logging"
	"risk-assessor/internal/metrics"
	"risk-assessor/internal/models"
	"risk-assessor/internal/risk"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

const (
	msgNonInteger = "Invalid input. Please enter valid integers."
	msgOutOfRange = "Invalid input. Please enter integers between 1 and 5."
	msgMissing    = "Invalid input. Please fill in all four ratings."

	maxNotesLen = 2000

	// room for the rating fields, the description and multipart framing
	formOverhead    = 1 << 20
	multipartMemory = 8 << 20
)

var allowedExtensions = map[string]struct{}{
	".pdf": {}, ".png": {}, ".jpg": {}, ".jpeg": {}, ".txt": {},
	".csv": {}, ".doc": {}, ".docx": {}, ".xls": {}, ".xlsx": {},
}

var (
	errAttachmentType = errors.New("attachment type not allowed")
	errAttachmentSize = errors.New("attachment too large")
)

// IntakeOptions controls attachment storage for submissions.
type IntakeOptions struct {
	UploadDir      string
	MaxUploadBytes int64
}

func ShowAssessmentForm(c *gin.Context) {
	render(c, http.StatusOK, "index.html", gin.H{"form": gin.H{}})
}

func validationMessage(err error) string {
	switch risk.KindOf(err) {
	case risk.OutOfRange:
		return msgOutOfRange
	case risk.MissingField:
		return msgMissing
	default:
		return msgNonInteger
	}
}

// SubmitAssessment validates the four ratings, stores the scored assessment
// and renders the result. Nothing is stored when validation fails.
func SubmitAssessment(opts IntakeOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if err := parseSubmission(c, opts.MaxUploadBytes); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				slog.InfoContext(ctx, "rejected oversized submission", "limit", tooLarge.Limit)
				render(c, http.StatusRequestEntityTooLarge, "index.html", gin.H{
					"form":  gin.H{},
					"error": fmt.Sprintf("Attachment exceeds %d MB.", opts.MaxUploadBytes>>20),
				})
				return
			}
			slog.InfoContext(ctx, "unreadable submission", "error", err)
			render(c, http.StatusBadRequest, "index.html", gin.H{
				"form":  gin.H{},
				"error": "Invalid form submission.",
			})
			return
		}

		form := gin.H{}
		for _, f := range risk.Fields() {
			form[f] = c.PostForm(f)
		}
		notes := strings.TrimSpace(c.PostForm("description"))
		form["description"] = notes

		ratings, err := risk.Validate(c)
		if err != nil {
			metrics.Default.ValidationFailures.WithLabelValues(risk.KindOf(err).String()).Inc()
			slog.InfoContext(ctx, "rejected risk submission", "error", err)
			render(c, http.StatusBadRequest, "index.html", gin.H{
				"form":  form,
				"error": validationMessage(err),
			})
			return
		}

		if utf8.RuneCountInString(notes) > maxNotesLen {
			render(c, http.StatusBadRequest, "index.html", gin.H{
				"form":  form,
				"error": fmt.Sprintf("Description must be at most %d characters.", maxNotesLen),
			})
			return
		}

		filePath, err := saveAttachment(c, opts)
		if err != nil {
			switch {
			case errors.Is(err, errAttachmentType):
				render(c, http.StatusBadRequest, "index.html", gin.H{
					"form":  form,
					"error": "Attachment type not allowed.",
				})
			case errors.Is(err, errAttachmentSize):
				render(c, http.StatusBadRequest, "index.html", gin.H{
					"form":  form,
					"error": fmt.Sprintf("Attachment exceeds %d MB.", opts.MaxUploadBytes>>20),
				})
			default:
				serverError(c, "failed to store attachment", err)
			}
			return
		}

		assessment := risk.Evaluate(ratings)
		rec := models.NewRisk(assessment, notes, filePath, time.Now().UTC())
		if err := database.CreateRisk(ctx, &rec); err != nil {
			if filePath != nil {
				_ = os.Remove(filepath.Join(opts.UploadDir, *filePath))
			}
			serverError(c, "failed to store risk assessment", err)
			return
		}

		metrics.Default.AssessmentsSubmitted.WithLabelValues(string(assessment.Band)).Inc()
		slog.InfoContext(ctx, "stored risk assessment",
			"id", rec.ID, "score", assessment.Score, "band", assessment.Band)

		if uid := currentUserID(c); uid != 0 {
			database.CreateAuditLog(uid, models.AuditEntityRisk, rec.ID, "create",
				fmt.Sprintf("%s risk, score %.2f", assessment.Band, assessment.Score))
		}

		render(c, http.StatusOK, "index.html", gin.H{
			"form":   gin.H{},
			"result": assessment,
			"riskID": rec.ID,
		})
	}
}

// parseSubmission reads the whole form up front with the body capped at
// maxUpload plus formOverhead, so oversized uploads stop at the cap.
func parseSubmission(c *gin.Context, maxUpload int64) error {
	if maxUpload > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUpload+formOverhead)
	}
	err := c.Request.ParseMultipartForm(multipartMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		return nil
	}
	return err
}

// saveAttachment stores the optional "file" part under a random name and
// returns that name, or nil when no file was sent.
func saveAttachment(c *gin.Context, opts IntakeOptions) (*string, error) {
	fh, err := c.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read attachment")
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return nil, goerr.Wrap(errAttachmentType, "rejected attachment", goerr.V("filename", fh.Filename))
	}
	if opts.MaxUploadBytes > 0 && fh.Size > opts.MaxUploadBytes {
		return nil, goerr.Wrap(errAttachmentSize, "rejected attachment",
			goerr.V("size", fh.Size), goerr.V("max", opts.MaxUploadBytes))
	}

	if err := os.MkdirAll(opts.UploadDir, 0o750); err != nil {
		return nil, goerr.Wrap(err, "failed to create upload directory", goerr.V("dir", opts.UploadDir))
	}

	name := uuid.NewString() + ext
	if err := saveFile(c, fh, filepath.Join(opts.UploadDir, name)); err != nil {
		return nil, err
	}
	slog.DebugContext(c.Request.Context(), "stored attachment", "name", name, "size", fh.Size)
	return &name, nil
}

func saveFile(c *gin.Context, fh *multipart.FileHeader, dst string) error {
	if err := c.SaveUploadedFile(fh, dst); err != nil {
		slog.WarnContext(c.Request.Context(), "failed to save attachment", logging.ErrAttrs(err)...)
		return goerr.Wrap(err, "failed to save attachment", goerr.V("path", dst))
	}
	return nil
}

// Package web serves the HTML form front end.
package web

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/Masterminds/sprig/v3"

	"github.com/carson-networks/fraud-detection-server/internal/failure"
	"github.com/carson-networks/fraud-detection-server/internal/logging"
	"github.com/carson-networks/fraud-detection-server/internal/record"
	"github.com/carson-networks/fraud-detection-server/internal/service"
)

//go:embed templates/*.html
var templateFS embed.FS

// maxFormMemory bounds the multipart form kept in memory.
const maxFormMemory = 1 << 20

const (
	pageIndex = "index.html"
	pageHome  = "home.html"
	pageError = "error.html"
)

type formField struct {
	Name        string
	Label       string
	Type        string
	Placeholder string
	Step        string
}

var formFields = []formField{
	{Name: record.FieldTransactionID, Label: "Transaction ID", Type: "text", Placeholder: "1754155"},
	{Name: record.FieldTxDatetime, Label: "Date and time", Type: "text", Placeholder: "2018-05-10 08:12:44"},
	{Name: record.FieldCustomerID, Label: "Customer ID", Type: "text", Placeholder: "4961"},
	{Name: record.FieldTerminalID, Label: "Terminal ID", Type: "text", Placeholder: "3412"},
	{Name: record.FieldTxAmount, Label: "Amount", Type: "number", Placeholder: "125.50", Step: "0.01"},
	{Name: record.FieldTxTimeSeconds, Label: "Seconds since start", Type: "number", Placeholder: "43200"},
	{Name: record.FieldTxTimeDays, Label: "Days since start", Type: "number", Placeholder: "2"},
	{Name: record.FieldTxFraudScenario, Label: "Fraud scenario", Type: "number", Placeholder: "0"},
}

type homeView struct {
	Fields []formField
	Values record.Form
	Result *service.Prediction
}

type errorView struct {
	Message string
	Kind    string
	Fields  []string
}

type predictor interface {
	Predict(ctx context.Context, form record.Form) (*service.Prediction, error)
}

// Handler renders the landing page and the prediction form.
type Handler struct {
	Predictions predictor
	pages       map[string]*template.Template
}

func NewHandler(p predictor) (*Handler, error) {
	pages := make(map[string]*template.Template)
	for _, name := range []string{pageIndex, pageHome, pageError} {
		t, err := template.New(name).Funcs(sprig.FuncMap()).ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("web: parse %s: %w", name, err)
		}
		pages[name] = t
	}
	return &Handler{Predictions: p, pages: pages}, nil
}

// Index handles GET /.
func (h *Handler) Index(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	return h.render(w, pageIndex, nil)
}

// PredictData handles GET and POST /predictdata. Prediction failures render
// the error page with status 200 and are returned for logging.
func (h *Handler) PredictData(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	if req.Method != http.MethodPost {
		return h.render(w, pageHome, homeView{Fields: formFields})
	}

	if err := parseForm(req); err != nil {
		logData.AddData("errorKind", failure.KindInputValidation.String())
		if renderErr := h.render(w, pageError, errorView{Message: "could not read the submitted form", Kind: failure.KindInputValidation.String()}); renderErr != nil {
			return renderErr
		}
		return err
	}

	form := make(record.Form, len(record.Fields))
	for _, name := range record.Fields {
		if values, ok := req.PostForm[name]; ok && len(values) > 0 {
			form[name] = values[0]
		}
	}

	stopTimer := logData.AddTiming("predictMs")
	result, err := h.Predictions.Predict(req.Context(), form)
	stopTimer()
	if err != nil {
		kind := failure.KindOf(err)
		logData.AddData("errorKind", kind.String())

		view := errorView{Message: failure.Message(err), Kind: kind.String()}
		var verr *record.ValidationError
		if errors.As(err, &verr) {
			view.Fields = verr.Fields()
		}
		if renderErr := h.render(w, pageError, view); renderErr != nil {
			return renderErr
		}
		return err
	}

	logData.AddData("transactionID", result.TransactionID)
	return h.render(w, pageHome, homeView{Fields: formFields, Values: form, Result: result})
}

// parseForm fills req.PostForm from urlencoded or multipart bodies.
func parseForm(req *http.Request) error {
	err := req.ParseMultipartForm(maxFormMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		return nil
	}
	return err
}

// render executes the page into a buffer first so a template error never
// leaves a half-written response.
func (h *Handler) render(w http.ResponseWriter, page string, data any) error {
	var buf bytes.Buffer
	if err := h.pages[page].ExecuteTemplate(&buf, "layout", data); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return fmt.Errorf("web: render %s: %w", page, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, err := buf.WriteTo(w)
	return err
}

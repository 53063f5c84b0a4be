package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/go-playground/validator/v10"
	"github.com/niksmo/inventory/internal/core/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// route registers h for the path with and without the trailing slash.
func route(mux *http.ServeMux, method, path string, h http.HandlerFunc) {
	base := strings.TrimSuffix(path, "/")
	mux.HandleFunc(method+" "+base, h)
	mux.HandleFunc(method+" "+base+"/{$}", h)
}

// decodeBody reads a JSON body into dst and validates it.
func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			field := typeErr.Field
			if field == "" {
				field = "body"
			}
			return domain.NewValidationError("invalid request body",
				domain.Violations{field: "type=" + typeErr.Type.String()})
		}
		return domain.NewValidationError("invalid JSON body", nil)
	}

	if err := validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}
		v := make(domain.Violations, len(fieldErrs))
		for _, fe := range fieldErrs {
			rule := fe.Tag()
			if fe.Param() != "" {
				rule += "=" + fe.Param()
			}
			v[fe.Field()] = rule
		}
		return domain.NewValidationError("invalid request body", v)
	}
	return nil
}

// queryParser collects violations over several query parameters.
type queryParser struct {
	q url.Values
	v domain.Violations
}

func newQueryParser(q url.Values) *queryParser {
	return &queryParser{q: q, v: make(domain.Violations)}
}

func (p *queryParser) intParam(key string) *int {
	s := p.q.Get(key)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		p.v[key] = "int"
		return nil
	}
	return &n
}

func (p *queryParser) int64Param(key string) *int64 {
	s := p.q.Get(key)
	if s == "" {
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		p.v[key] = "int"
		return nil
	}
	return &n
}

func (p *queryParser) stringParam(key string) *string {
	s := p.q.Get(key)
	if s == "" {
		return nil
	}
	return &s
}

// timeParam parses a datetime, values without a zone are taken as UTC.
func (p *queryParser) timeParam(key string) *time.Time {
	s := p.q.Get(key)
	if s == "" {
		return nil
	}
	t, err := parseTime(s)
	if err != nil {
		p.v[key] = "datetime"
		return nil
	}
	return &t
}

func (p *queryParser) err(msg string) error {
	if len(p.v) == 0 {
		return nil
	}
	return domain.NewValidationError(msg, p.v)
}

func parseTime(s string) (time.Time, error) {
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response body",
			"op", "httphandler.writeJSON", "err", err)
	}
}

// writeError maps err to a status code and an error body.
func writeError(w http.ResponseWriter, log *slog.Logger, err error) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		log.Warn("invalid input", "err", err)
		writeJSON(w, http.StatusUnprocessableEntity,
			ErrorBody{Detail: vErr.Msg, Errors: vErr.Violations})
	case errors.Is(err, domain.ErrProductNotFound):
		log.Info("product not found", "err", err)
		writeJSON(w, http.StatusNotFound,
			ErrorBody{Detail: "Product not found"})
	case errors.Is(err, domain.ErrDanglingSale):
		log.Error("inconsistent data", "err", err)
		writeJSON(w, http.StatusInternalServerError,
			ErrorBody{Detail: domain.ErrDanglingSale.Error()})
	default:
		log.Error("request failed", "err", err)
		writeJSON(w, http.StatusInternalServerError,
			ErrorBody{Detail: "internal error"})
	}
}

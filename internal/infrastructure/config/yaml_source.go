package config

import (
	"context"
	"errors"
	"os"
	"sort"
	"strings"

	"go.uber.org/multierr"

	cfgpkg "github.com/alexisbeaulieu97/motionkit/internal/config"
	"github.com/alexisbeaulieu97/motionkit/internal/domain/tokens"
	"github.com/alexisbeaulieu97/motionkit/internal/ports"
	apperrors "github.com/alexisbeaulieu97/motionkit/pkg/errors"
)

// YAMLSource implements the TokenSource port. Empty paths select the
// embedded documents.
type YAMLSource struct {
	referencePath   string
	definitionsPath string
	logger          ports.Logger
}

// NewYAMLSource creates a source over the given document paths.
func NewYAMLSource(referencePath, definitionsPath string, logger ports.Logger) *YAMLSource {
	return &YAMLSource{
		referencePath:   referencePath,
		definitionsPath: definitionsPath,
		logger:          logger,
	}
}

// Reference loads the base tables.
func (s *YAMLSource) Reference(ctx context.Context) (tokens.Reference, error) {
	if err := contextCheck(ctx); err != nil {
		return tokens.Reference{}, err
	}

	path := s.referencePath
	var (
		ref tokens.Reference
		err error
	)
	if path == "" {
		path = cfgpkg.DefaultReferencePath
		ref, err = cfgpkg.DefaultReference()
	} else {
		ref, err = cfgpkg.ParseReferenceFile(path)
	}
	if err != nil {
		s.logError(ctx, "failed to load reference tables", err, map[string]interface{}{"path": path})
		return tokens.Reference{}, convertError(err, path)
	}

	s.logDebug(ctx, "reference tables loaded", map[string]interface{}{
		"path":     path,
		"duration": len(ref.Duration),
		"motion":   len(ref.Motion),
		"spring":   len(ref.Spring),
	})
	return ref, nil
}

// Definitions loads the component token definitions in document order.
func (s *YAMLSource) Definitions(ctx context.Context) (tokens.Definitions, error) {
	if err := contextCheck(ctx); err != nil {
		return nil, err
	}

	path := s.definitionsPath
	var (
		defs tokens.Definitions
		err  error
	)
	if path == "" {
		path = cfgpkg.DefaultDefinitionsPath
		defs, err = cfgpkg.DefaultDefinitions()
	} else {
		defs, err = cfgpkg.ParseDefinitionsFile(path)
	}
	if err != nil {
		s.logError(ctx, "failed to load token definitions", err, map[string]interface{}{"path": path})
		return nil, convertError(err, path)
	}

	s.logDebug(ctx, "token definitions loaded", map[string]interface{}{"path": path, "tokens": len(defs)})
	return defs, nil
}

var _ ports.TokenSource = (*YAMLSource)(nil)

// convertError maps document errors onto domain error codes. Aggregated
// validation failures keep every message in the domain error text.
func convertError(err error, path string) error {
	if err == nil {
		return nil
	}
	var parseErr *apperrors.ParseError
	if errors.As(err, &parseErr) && len(multierr.Errors(err)) <= 1 {
		if errors.Is(parseErr.Err, os.ErrNotExist) {
			return tokens.NewDomainError(tokens.ErrCodeNotFound, "token document not found", parseErr.Err, map[string]interface{}{"path": path})
		}
		return tokens.NewDomainError(tokens.ErrCodeValidation, "invalid token document syntax", err, map[string]interface{}{"path": parseErr.Path, "line": parseErr.Line})
	}

	if errs := multierr.Errors(err); len(errs) > 0 {
		fields := make([]string, 0, len(errs))
		messages := make([]string, 0, len(errs))
		for _, e := range errs {
			var valErr *apperrors.ValidationError
			if errors.As(e, &valErr) && valErr.Field != "" {
				fields = append(fields, valErr.Field)
			}
			messages = append(messages, e.Error())
		}
		sort.Strings(fields)
		ctx := map[string]interface{}{"path": path, "problems": len(errs)}
		if len(fields) > 0 {
			ctx["fields"] = strings.Join(fields, ",")
		}
		return tokens.NewDomainError(tokens.ErrCodeValidation, strings.Join(messages, "; "), err, ctx)
	}

	return tokens.NewDomainError(tokens.ErrCodeInternal, "token document load failed", err, map[string]interface{}{"path": path})
}

func contextCheck(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return tokens.NewDomainError(tokens.ErrCodeInternal, "operation cancelled", err, nil)
	}
	return nil
}

func (s *YAMLSource) logDebug(ctx context.Context, msg string, fields map[string]interface{}) {
	if s.logger == nil {
		return
	}
	s.logger.Debug(ctx, msg, flattenFields(fields)...)
}

func (s *YAMLSource) logError(ctx context.Context, msg string, err error, fields map[string]interface{}) {
	if s.logger == nil {
		return
	}
	payload := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		payload[k] = v
	}
	payload["error"] = err
	s.logger.Error(ctx, msg, flattenFields(payload)...)
}

func flattenFields(fields map[string]interface{}) []interface{} {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]interface{}, 0, len(fields)*2)
	for _, k := range keys {
		args = append(args, k, fields[k])
	}
	return args
}

package review

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	provider_contracts "github.com/locr-dev/locr/providers/contracts"
	"github.com/locr-dev/locr/review/contracts"
	"github.com/locr-dev/locr/review/models"
	"github.com/locr-dev/locr/utils"
)

// EngineOptions configures a ReviewEngine. Extensions is the allow-set
// for file discovery; MaxTokens is the generation budget handed to the
// provider.
type EngineOptions struct {
	OutputDir  string
	Extensions []string
	MaxTokens  int
}

// ReviewEngine processes files strictly sequentially: one file is fully
// reviewed before the next begins. The cache is the only cross-file
// resource, read then written per fingerprint.
type ReviewEngine struct {
	provider provider_contracts.IReviewProvider
	cache    *ReviewCache
	options  EngineOptions
	logger   zerolog.Logger
}

// NewReviewEngine wires the provider, cache, and options together.
func NewReviewEngine(provider provider_contracts.IReviewProvider, cache *ReviewCache, options EngineOptions, logger zerolog.Logger) contracts.IReviewEngine {
	return &ReviewEngine{
		provider: provider,
		cache:    cache,
		options:  options,
		logger:   logger,
	}
}

// CollectFiles walks rootDir and returns every regular file whose
// extension is in the allow-set, skipping default-ignored paths.
// filepath.WalkDir visits lexically, so the order is deterministic.
func (e *ReviewEngine) CollectFiles(rootDir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		relativePath, relErr := filepath.Rel(rootDir, path)
		if relErr != nil {
			relativePath = path
		}
		relativePath = strings.ReplaceAll(relativePath, "\\", "/")

		if utils.IsDefaultIgnored(relativePath) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !utils.HasSupportedExtension(path, e.options.Extensions) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// ReviewFile runs the full pipeline for one file: read & truncate,
// cache lookup, model invocation on miss, normalization, cache store,
// artifact writing. A malformed model response still produces output
// artifacts with all categories empty.
func (e *ReviewEngine) ReviewFile(ctx context.Context, path string) (*models.FileReviewResult, error) {
	source, lineCount, err := utils.ReadTruncated(path)
	if err != nil {
		return nil, &FileReadError{Path: path, Err: err}
	}

	request := models.NewReviewRequest(path, utils.DetectLanguage(path), source, lineCount, utils.Fingerprint(source))

	record, cacheHit := e.cache.Get(request.Fingerprint)
	if cacheHit {
		record.SourceFile = path
		e.logger.Info().Str("file", path).Str("fingerprint", request.Fingerprint).Msg("cache hit, skipping model invocation")
	} else {
		record, err = e.reviewWithModel(ctx, request)
		if err != nil {
			return nil, err
		}
	}

	jsonPath, textPath, err := SaveReview(record, e.options.OutputDir)
	if err != nil {
		return nil, err
	}
	e.logger.Info().Str("file", path).Str("json", jsonPath).Str("text", textPath).Msg("review saved")

	return &models.FileReviewResult{
		FilePath: path,
		Record:   record,
		CacheHit: cacheHit,
		JSONPath: jsonPath,
		TextPath: textPath,
	}, nil
}

// reviewWithModel invokes the provider and normalizes its response. A
// totally unparsable response degrades to an empty, malformed-flagged
// record and is not cached; only successful normalizations enter the
// cache.
func (e *ReviewEngine) reviewWithModel(ctx context.Context, request models.ReviewRequest) (*models.ReviewRecord, error) {
	prompt := BuildPrompt(request)

	raw, err := e.provider.ReviewCompletionRequest(ctx, prompt, e.options.MaxTokens)
	if err != nil {
		return nil, &ModelInvocationError{Path: request.FilePath, Err: err}
	}

	record, err := Normalize(raw, utils.MaxReviewLines)
	if err != nil {
		var malformed *MalformedResponseError
		if !errors.As(err, &malformed) {
			return nil, err
		}
		e.logger.Error().Str("file", request.FilePath).Str("raw_output", malformed.Raw).Msg("no valid JSON found in model output")
		record = models.NewReviewRecord(request.FilePath)
		record.Malformed = true
		return record, nil
	}

	record.SourceFile = request.FilePath
	if err := e.cache.Put(request.Fingerprint, record); err != nil {
		// Cache trouble never fails the review.
		e.logger.Warn().Err(err).Str("file", request.FilePath).Msg("failed to store review in cache")
	}
	return record, nil
}

// Run reviews every eligible file under rootDir sequentially. Per-file
// errors are logged and counted as skips; the run itself always
// completes unless the context is cancelled.
func (e *ReviewEngine) Run(ctx context.Context, rootDir string) (*models.RunSummary, error) {
	files, err := e.CollectFiles(rootDir)
	if err != nil {
		return nil, err
	}

	summary := &models.RunSummary{}
	for _, path := range files {
		if ctx.Err() != nil {
			return summary, ctx.Err()
		}
		result, err := e.ReviewFile(ctx, path)
		if err != nil {
			e.logger.Error().Err(err).Str("file", path).Msg("skipping file")
			summary.FilesSkipped++
			continue
		}
		summary.FilesProcessed++
		if result.CacheHit {
			summary.CacheHits++
		}
		record := result.Record
		if record.Malformed {
			summary.MalformedReviews++
		}
		summary.Bugs += len(record.Bugs)
		summary.QualityIssues += len(record.QualityIssues)
		summary.Suggestions += len(record.Suggestions)
		summary.SecurityConcerns += len(record.SecurityConcerns)
	}
	return summary, nil
}

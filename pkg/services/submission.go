package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"visitor-registration/pkg/clients/feishu"
	"visitor-registration/pkg/config"
	"visitor-registration/pkg/metrics"
	"visitor-registration/pkg/models"
	"visitor-registration/pkg/utils"
	"visitor-registration/pkg/validation"
)

// Client-facing messages. Internal error detail is only logged.
const (
	MsgServerError       = "服务器处理请求时出错，请稍后重试。"
	MsgFeishuWriteError  = "写入飞书多维表格时出错，请检查配置参数和网络连接。"
	MsgInvalidSubmission = "提交的信息有误，请检查后重试。"
)

// ErrMalformedBody is returned when the request body is not a submission object
var ErrMalformedBody = errors.New("malformed submission body")

// ErrEmptyToken is returned when configured credentials yield no tenant token
var ErrEmptyToken = errors.New("empty tenant access token")

// Stage names the outbound call a WriteError came from
type Stage string

const (
	StageToken  Stage = "token"
	StageRecord Stage = "record"
)

// WriteError describes a failed remote write. It never fails the submission.
type WriteError struct {
	Stage   Stage
	Err     error
	Timeout bool
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("feishu %s call failed: %v", e.Stage, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Retryable reports whether the caller could reasonably try the write again.
func (e *WriteError) Retryable() bool { return e.Timeout }

// SubmissionResult is the status code and body to send back to the client.
// Exactly one of Accepted and Rejected is set.
type SubmissionResult struct {
	Status   int
	Accepted *models.SubmissionResponse
	Rejected *models.FailureResponse
}

// Body returns the value to encode as the JSON response body
func (r SubmissionResult) Body() any {
	if r.Accepted != nil {
		return r.Accepted
	}
	return r.Rejected
}

// SubmissionService handles visitor submissions for both deployment variants
type SubmissionService interface {
	Handle(ctx context.Context, body []byte) SubmissionResult
	WriteRecord(ctx context.Context, record models.ExternalRecord) (json.RawMessage, *WriteError)
}

type submissionServiceImpl struct {
	feishuClient feishu.Client
	config       *config.Config
	logger       *zap.Logger
	now          func() time.Time
}

// NewSubmissionService creates a new submission service
func NewSubmissionService(feishuClient feishu.Client, cfg *config.Config, logger *zap.Logger) SubmissionService {
	return &submissionServiceImpl{
		feishuClient: feishuClient,
		config:       cfg,
		logger:       logger,
		now:          time.Now,
	}
}

// DecodeSubmission parses a request body. A JSON null or non-object body is malformed.
func DecodeSubmission(body []byte) (models.VisitorSubmission, error) {
	var sub *models.VisitorSubmission
	if err := json.Unmarshal(body, &sub); err != nil {
		return models.VisitorSubmission{}, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	if sub == nil {
		return models.VisitorSubmission{}, fmt.Errorf("%w: null payload", ErrMalformedBody)
	}
	return *sub, nil
}

// Handle accepts a submission, writes it to the bitable table when configured and
// composes the response. Only failures outside the remote write fail the request.
func (s *submissionServiceImpl) Handle(ctx context.Context, body []byte) (result SubmissionResult) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic while handling submission", zap.Any("panic", r), zap.Stack("stack"))
			metrics.RecordSubmission(metrics.ResultFailed)
			result = serverError()
		}
	}()

	sub, err := DecodeSubmission(body)
	if err != nil {
		s.logger.Error("error handling submission", zap.Error(err))
		metrics.RecordSubmission(metrics.ResultFailed)
		return serverError()
	}

	log := s.logger.With(
		zap.String("phone", utils.MaskPhone(sub.Phone)),
		zap.String("phone_hash", utils.HashString(sub.Phone)),
	)
	log.Info("processing visitor submission")

	if s.config.StrictValidation {
		if errs := validation.Validate(sub, validation.LangZH); len(errs) > 0 {
			log.Warn("rejected invalid submission", zap.Error(errs))
			metrics.RecordSubmission(metrics.ResultRejected)
			return SubmissionResult{
				Status:   http.StatusBadRequest,
				Rejected: &models.FailureResponse{Error: MsgInvalidSubmission, Fields: errs},
			}
		}
	}

	record := ToExternalRecord(sub, s.now(), s.config.VisitTimeOffset)

	// The remote write outlives a dropped client connection.
	remote, writeErr := s.WriteRecord(context.WithoutCancel(ctx), record)
	if writeErr != nil {
		log.Error("error writing bitable record",
			zap.String("stage", string(writeErr.Stage)),
			zap.Bool("retryable", writeErr.Retryable()),
			zap.Error(writeErr.Err),
		)
		remote = errorMarker()
	}

	metrics.RecordSubmission(metrics.ResultAccepted)
	return SubmissionResult{
		Status: http.StatusOK,
		Accepted: &models.SubmissionResponse{
			Success: true,
			Data:    &models.LocalResult{Local: true},
			Feishu:  remote,
		},
	}
}

// WriteRecord acquires a tenant token and creates the record. It returns a nil
// result and nil error when the table or the app credentials are not configured.
// With credentials set, an empty token is a failed write.
func (s *submissionServiceImpl) WriteRecord(ctx context.Context, record models.ExternalRecord) (json.RawMessage, *WriteError) {
	if !s.config.TableConfigured() {
		metrics.RecordFeishuWrite(metrics.OutcomeSkipped)
		return nil, nil
	}
	if !s.config.CredentialsConfigured() {
		s.logger.Warn("feishu app credentials not configured, skipping bitable write")
		metrics.RecordFeishuWrite(metrics.OutcomeSkipped)
		return nil, nil
	}

	start := time.Now()
	token, err := s.feishuClient.TenantAccessToken(ctx)
	metrics.ObserveFeishuCall(metrics.CallToken, start)
	if err != nil {
		return nil, s.writeFailed(StageToken, err)
	}
	if token == "" {
		return nil, s.writeFailed(StageToken, ErrEmptyToken)
	}

	start = time.Now()
	out, err := s.feishuClient.CreateRecord(ctx, token, record)
	metrics.ObserveFeishuCall(metrics.CallRecord, start)
	if err != nil {
		return nil, s.writeFailed(StageRecord, err)
	}

	metrics.RecordFeishuWrite(metrics.OutcomeCreated)
	return out, nil
}

func (s *submissionServiceImpl) writeFailed(stage Stage, err error) *WriteError {
	werr := &WriteError{Stage: stage, Err: err, Timeout: feishu.IsTimeout(err)}
	if werr.Timeout {
		metrics.RecordFeishuWrite(metrics.OutcomeTimeout)
	} else {
		metrics.RecordFeishuWrite(metrics.OutcomeError)
	}
	return werr
}

func serverError() SubmissionResult {
	return SubmissionResult{
		Status:   http.StatusInternalServerError,
		Rejected: &models.FailureResponse{Error: MsgServerError},
	}
}

func errorMarker() json.RawMessage {
	raw, _ := json.Marshal(models.ExternalWriteMarker{Error: MsgFeishuWriteError})
	return raw
}

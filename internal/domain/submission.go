package domain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"path/filepath"
	"strings"
	"time"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/google/uuid"
	"github.com/nfnt/resize"
	"github.com/rewardlab/backend/internal/common"
	"github.com/rewardlab/backend/internal/entity"
	"github.com/rewardlab/backend/internal/model"
	"github.com/rewardlab/backend/internal/repository"
	"github.com/rewardlab/backend/pkg/api/telegram"
	"github.com/rewardlab/backend/pkg/errorx"
	"github.com/rewardlab/backend/pkg/storage"
	"github.com/rewardlab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

var allowedProofMimes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
}

type SubmissionDomain interface {
	SetProofIntent(context.Context, *model.SetProofIntentRequest) (*model.SetProofIntentResponse, error)
	CancelProofIntent(context.Context, *model.CancelProofIntentRequest) (*model.CancelProofIntentResponse, error)
	SubmitProof(context.Context, *model.SubmitProofRequest) (*model.SubmitProofResponse, error)
	GetMySubmissions(context.Context, *model.GetMySubmissionsRequest) (*model.GetMySubmissionsResponse, error)
	GetPendingList(context.Context, *model.GetPendingSubmissionsRequest) (*model.GetPendingSubmissionsResponse, error)
	Review(context.Context, *model.ReviewSubmissionRequest) (*model.ReviewSubmissionResponse, error)
}

type submissionDomain struct {
	submissionRepo   repository.SubmissionRepository
	taskRepo         repository.TaskRepository
	userRepo         repository.UserRepository
	proofIntentRepo  repository.ProofIntentRepository
	settingRepo      repository.SettingRepository
	roleVerifier     *common.GlobalRoleVerifier
	storage          storage.Storage
	telegramEndpoint telegram.IEndpoint
}

func NewSubmissionDomain(
	submissionRepo repository.SubmissionRepository,
	taskRepo repository.TaskRepository,
	userRepo repository.UserRepository,
	proofIntentRepo repository.ProofIntentRepository,
	settingRepo repository.SettingRepository,
	storage storage.Storage,
	telegramEndpoint telegram.IEndpoint,
) *submissionDomain {
	return &submissionDomain{
		submissionRepo:   submissionRepo,
		taskRepo:         taskRepo,
		userRepo:         userRepo,
		proofIntentRepo:  proofIntentRepo,
		settingRepo:      settingRepo,
		roleVerifier:     common.NewGlobalRoleVerifier(userRepo),
		storage:          storage,
		telegramEndpoint: telegramEndpoint,
	}
}

// SetProofIntent marks that the caller opened a task for proof upload. A
// user holds a single marker; opening another task overwrites it.
func (d *submissionDomain) SetProofIntent(
	ctx context.Context, req *model.SetProofIntentRequest,
) (*model.SetProofIntentResponse, error) {
	task, err := d.taskRepo.GetByID(ctx, req.TaskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found task")
		}

		xcontext.Logger(ctx).Errorf("Cannot get the task: %v", err)
		return nil, errorx.Unknown
	}

	if !task.Active {
		return nil, errorx.New(errorx.NotFound, "Not found task")
	}

	err = d.proofIntentRepo.Upsert(ctx, &entity.ProofIntent{
		UserID:    xcontext.RequestUserID(ctx),
		TaskID:    task.ID,
		ExpiredAt: time.Now().Add(xcontext.Configs(ctx).Reward.ProofIntentTTL),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upsert the proof intent: %v", err)
		return nil, errorx.Unknown
	}

	return &model.SetProofIntentResponse{}, nil
}

func (d *submissionDomain) CancelProofIntent(
	ctx context.Context, req *model.CancelProofIntentRequest,
) (*model.CancelProofIntentResponse, error) {
	if err := d.proofIntentRepo.Delete(ctx, xcontext.RequestUserID(ctx)); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete the proof intent: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CancelProofIntentResponse{}, nil
}

// SubmitProof stores a screenshot as evidence that the caller completed a
// task. The submission waits in pending state until a reviewer decides.
func (d *submissionDomain) SubmitProof(
	ctx context.Context, req *model.SubmitProofRequest,
) (*model.SubmitProofResponse, error) {
	user, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get the user: %v", err)
		return nil, errorx.Unknown
	}

	if !common.IsChannelMember(ctx, d.telegramEndpoint, d.settingRepo, user.TelegramID) {
		return nil, errorx.New(errorx.MembershipRequired, "You need to join our channel first")
	}

	taskID := req.TaskID
	if taskID == "" {
		intent, err := d.proofIntentRepo.Get(ctx, user.ID)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Not allow an empty task id")
		}

		taskID = intent.TaskID
	}

	task, err := d.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found task")
		}

		xcontext.Logger(ctx).Errorf("Cannot get the task: %v", err)
		return nil, errorx.Unknown
	}

	if !task.Active {
		return nil, errorx.New(errorx.NotFound, "Not found task")
	}

	content, ext, err := d.readProof(ctx)
	if err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(content))
	if err != nil {
		return nil, errorx.New(errorx.InvalidImage, "The proof is not a valid image")
	}

	fileName := fmt.Sprintf("%d_%s_%s%s",
		user.TelegramID, time.Now().UTC().Format("20060102150405"), uuid.NewString(), ext)

	uploaded, err := d.storage.Upload(ctx, &storage.UploadObject{
		Prefix:   "proofs",
		FileName: fileName,
		Mime:     allowedProofMimes[ext],
		Data:     content,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upload the proof: %v", err)
		return nil, errorx.Unknown
	}

	d.uploadThumbnail(ctx, img, fileName)

	submission := &entity.Submission{
		Base:      entity.Base{ID: uuid.NewString()},
		TaskID:    task.ID,
		UserID:    user.ID,
		ProofFile: uploaded.FileName,
		ProofURL:  uploaded.Url,
		Status:    entity.Pending,
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.submissionRepo.Create(ctx, submission); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create the submission: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.proofIntentRepo.Delete(ctx, user.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete the proof intent: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.SubmitProofResponse{
		ID:       submission.ID,
		ProofURL: submission.ProofURL,
		Status:   string(submission.Status),
	}, nil
}

func (d *submissionDomain) readProof(ctx context.Context) ([]byte, string, error) {
	cfg := xcontext.Configs(ctx)
	file, header, err := xcontext.HTTPRequest(ctx).FormFile("proof")
	if err != nil {
		return nil, "", errorx.New(errorx.EmptyFile, "The proof image is required")
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, cfg.File.MaxSize+1))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot read the proof: %v", err)
		return nil, "", errorx.Unknown
	}

	if len(content) == 0 {
		return nil, "", errorx.New(errorx.EmptyFile, "Not allow an empty proof")
	}

	if int64(len(content)) > cfg.File.MaxSize {
		return nil, "", errorx.New(errorx.FileTooLarge,
			"The proof must not exceed %d bytes", cfg.File.MaxSize)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if _, ok := allowedProofMimes[ext]; !ok {
		return nil, "", errorx.New(errorx.InvalidExtension, "Not supported file type %s", ext)
	}

	return content, ext, nil
}

// uploadThumbnail stores a small preview next to the proof. Review lists
// load the preview, not the full image. Failures only degrade the preview.
func (d *submissionDomain) uploadThumbnail(ctx context.Context, img image.Image, fileName string) {
	thumb := resize.Thumbnail(
		xcontext.Configs(ctx).File.ThumbnailWidth,
		xcontext.Configs(ctx).File.ThumbnailWidth,
		img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := png.Encode(&buf, thumb); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot encode the thumbnail: %v", err)
		return
	}

	_, err := d.storage.Upload(ctx, &storage.UploadObject{
		Prefix:   "thumbnails",
		FileName: strings.TrimSuffix(fileName, filepath.Ext(fileName)) + ".png",
		Mime:     "image/png",
		Data:     buf.Bytes(),
	})
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot upload the thumbnail: %v", err)
	}
}

func (d *submissionDomain) GetMySubmissions(
	ctx context.Context, req *model.GetMySubmissionsRequest,
) (*model.GetMySubmissionsResponse, error) {
	submissions, err := d.submissionRepo.GetListByUserID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get the submission list: %v", err)
		return nil, errorx.Unknown
	}

	result := make([]model.Submission, 0, len(submissions))
	for i := range submissions {
		result = append(result, common.ConvertSubmission(&submissions[i]))
	}

	return &model.GetMySubmissionsResponse{Submissions: result}, nil
}

func (d *submissionDomain) GetPendingList(
	ctx context.Context, req *model.GetPendingSubmissionsRequest,
) (*model.GetPendingSubmissionsResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.AdminRole, entity.ReviewerRole); err != nil {
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	cfg := xcontext.Configs(ctx)
	if req.Limit == 0 {
		req.Limit = cfg.ApiServer.DefaultLimit
	}

	if req.Limit < 0 {
		return nil, errorx.New(errorx.BadRequest, "Limit must be positive")
	}

	if req.Limit > cfg.ApiServer.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceed the maximum of limit (%d)", cfg.ApiServer.MaxLimit)
	}

	submissions, err := d.submissionRepo.GetPendingList(ctx, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get the pending list: %v", err)
		return nil, errorx.Unknown
	}

	result := make([]model.Submission, 0, len(submissions))
	for i := range submissions {
		result = append(result, common.ConvertSubmission(&submissions[i]))
	}

	return &model.GetPendingSubmissionsResponse{Submissions: result}, nil
}

// Review decides a pending submission. Approving credits the task's current
// reward to the submitter. A submission is decided exactly once.
func (d *submissionDomain) Review(
	ctx context.Context, req *model.ReviewSubmissionRequest,
) (*model.ReviewSubmissionResponse, error) {
	if err := d.roleVerifier.Verify(ctx, entity.AdminRole, entity.ReviewerRole); err != nil {
		return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
	}

	var status entity.SubmissionStatus
	switch strings.ToLower(req.Action) {
	case "approve":
		status = entity.Approved
	case "reject":
		status = entity.Rejected
	default:
		return nil, errorx.New(errorx.InvalidAction, "Invalid action %s", req.Action)
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	submission, err := d.submissionRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found submission")
		}

		xcontext.Logger(ctx).Errorf("Cannot get the submission: %v", err)
		return nil, errorx.Unknown
	}

	if submission.Status != entity.Pending {
		return nil, errorx.New(errorx.AlreadyReviewed,
			"The submission has already been %s", submission.Status)
	}

	err = d.submissionRepo.UpdateReviewByID(ctx, submission.ID, &entity.Submission{
		Status:       status,
		ReviewerID:   xcontext.RequestUserID(ctx),
		ReviewReason: req.Reason,
		ReviewedAt:   time.Now(),
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Another reviewer won the race; report the verdict they left.
			if current, getErr := d.submissionRepo.GetByID(ctx, submission.ID); getErr == nil {
				return nil, errorx.New(errorx.AlreadyReviewed,
					"The submission has already been %s", current.Status)
			}

			return nil, errorx.New(errorx.AlreadyReviewed, "The submission has already been reviewed")
		}

		xcontext.Logger(ctx).Errorf("Cannot update the submission: %v", err)
		return nil, errorx.Unknown
	}

	if status == entity.Approved {
		task, err := d.taskRepo.GetByID(ctx, submission.TaskID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get the task of submission: %v", err)
			return nil, errorx.Unknown
		}

		if err := d.userRepo.IncreaseBalance(ctx, submission.UserID, task.Reward); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot credit the reward: %v", err)
			return nil, errorx.Unknown
		}
	}

	xcontext.WithCommitDBTransaction(ctx)

	return &model.ReviewSubmissionResponse{}, nil
}

package domain

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rewardlab/backend/internal/entity"
	"github.com/rewardlab/backend/internal/model"
	"github.com/rewardlab/backend/internal/repository"
	"github.com/rewardlab/backend/pkg/errorx"
	"github.com/rewardlab/backend/pkg/testutil"
	"github.com/rewardlab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSubmissionDomain(storage *testutil.MockStorage) SubmissionDomain {
	return NewSubmissionDomain(
		repository.NewSubmissionRepository(),
		repository.NewTaskRepository(),
		repository.NewUserRepository(),
		repository.NewProofIntentRepository(),
		repository.NewSettingRepository(),
		storage,
		&testutil.MockTelegramEndpoint{},
	)
}

func proofRequestContext(t *testing.T, ctx context.Context, fileName string, content []byte) context.Context {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("proof", fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/submitProof", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return xcontext.WithHTTPRequest(ctx, req)
}

func pngBytes(t *testing.T) []byte {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))))
	return buf.Bytes()
}

func Test_submissionDomain_SubmitProof(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	d := newSubmissionDomain(&testutil.MockStorage{})

	authorizedCtx := testutil.NewMockContextWithUserID(ctx, testutil.User1.ID)
	authorizedCtx = proofRequestContext(t, authorizedCtx, "proof.png", pngBytes(t))

	resp, err := d.SubmitProof(authorizedCtx, &model.SubmitProofRequest{TaskID: testutil.Task1.ID})
	require.NoError(t, err)
	require.Equal(t, "pending", resp.Status)
	require.NotEmpty(t, resp.ProofURL)

	submission, err := repository.NewSubmissionRepository().GetByID(ctx, resp.ID)
	require.NoError(t, err)
	require.Equal(t, entity.Pending, submission.Status)
	require.Equal(t, testutil.User1.ID, submission.UserID)
	require.Equal(t, testutil.Task1.ID, submission.TaskID)
}

func Test_submissionDomain_SubmitProof_UsesProofIntent(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	d := newSubmissionDomain(&testutil.MockStorage{})

	authorizedCtx := testutil.NewMockContextWithUserID(ctx, testutil.User1.ID)
	_, err := d.SetProofIntent(authorizedCtx, &model.SetProofIntentRequest{TaskID: testutil.Task1.ID})
	require.NoError(t, err)

	uploadCtx := proofRequestContext(t, authorizedCtx, "proof.png", pngBytes(t))
	resp, err := d.SubmitProof(uploadCtx, &model.SubmitProofRequest{})
	require.NoError(t, err)

	submission, err := repository.NewSubmissionRepository().GetByID(ctx, resp.ID)
	require.NoError(t, err)
	require.Equal(t, testutil.Task1.ID, submission.TaskID)

	// The marker is consumed by the submission.
	_, err = repository.NewProofIntentRepository().Get(ctx, testutil.User1.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func Test_submissionDomain_SubmitProof_Validation(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	d := newSubmissionDomain(&testutil.MockStorage{})
	authorizedCtx := testutil.NewMockContextWithUserID(ctx, testutil.User1.ID)

	testcases := []struct {
		name     string
		fileName string
		content  []byte
		code     errorx.Code
	}{
		{
			name:     "empty file",
			fileName: "proof.png",
			content:  nil,
			code:     errorx.EmptyFile,
		},
		{
			name:     "oversized file",
			fileName: "proof.png",
			content:  make([]byte, 5*1024*1024+1),
			code:     errorx.FileTooLarge,
		},
		{
			name:     "unsupported extension",
			fileName: "proof.bmp",
			content:  pngBytes(t),
			code:     errorx.InvalidExtension,
		},
		{
			name:     "not an image",
			fileName: "proof.png",
			content:  []byte("definitely not a png"),
			code:     errorx.InvalidImage,
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			uploadCtx := proofRequestContext(t, authorizedCtx, tc.fileName, tc.content)
			_, err := d.SubmitProof(uploadCtx, &model.SubmitProofRequest{TaskID: testutil.Task1.ID})
			require.Error(t, err)

			var errx errorx.Error
			require.True(t, errors.As(err, &errx))
			require.Equal(t, tc.code, errx.Code)
		})
	}

	// No submission row may exist after the rejected uploads.
	submissions, err := repository.NewSubmissionRepository().GetListByUserID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Empty(t, submissions)
}

func Test_submissionDomain_SubmitProof_InactiveTask(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	d := newSubmissionDomain(&testutil.MockStorage{})

	authorizedCtx := testutil.NewMockContextWithUserID(ctx, testutil.User1.ID)
	authorizedCtx = proofRequestContext(t, authorizedCtx, "proof.png", pngBytes(t))

	_, err := d.SubmitProof(authorizedCtx, &model.SubmitProofRequest{TaskID: testutil.Task2.ID})
	require.Error(t, err)
	require.Equal(t, "Not found task", err.Error())
}

func Test_submissionDomain_Review(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	submissionRepo := repository.NewSubmissionRepository()
	userRepo := repository.NewUserRepository()
	d := newSubmissionDomain(&testutil.MockStorage{})

	submission := &entity.Submission{
		Base:   entity.Base{ID: "submission1"},
		TaskID: testutil.Task1.ID,
		UserID: testutil.User1.ID,
		Status: entity.Pending,
	}
	require.NoError(t, submissionRepo.Create(ctx, submission))

	// A regular user cannot review.
	_, err := d.Review(testutil.NewMockContextWithUserID(ctx, testutil.User2.ID),
		&model.ReviewSubmissionRequest{ID: submission.ID, Action: "approve"})
	require.Error(t, err)
	require.Equal(t, "Permission denied", err.Error())

	// An unknown action is refused.
	reviewerCtx := testutil.NewMockContextWithUserID(ctx, testutil.Reviewer.ID)
	_, err = d.Review(reviewerCtx, &model.ReviewSubmissionRequest{ID: submission.ID, Action: "maybe"})
	require.Error(t, err)

	var actionErr errorx.Error
	require.True(t, errors.As(err, &actionErr))
	require.Equal(t, errorx.InvalidAction, actionErr.Code)

	// Approving credits the task reward to the submitter.
	_, err = d.Review(reviewerCtx, &model.ReviewSubmissionRequest{
		ID:     submission.ID,
		Action: "approve",
		Reason: "looks good",
	})
	require.NoError(t, err)

	user, err := userRepo.GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, testutil.Task1.Reward, user.Balance)

	reviewed, err := submissionRepo.GetByID(ctx, submission.ID)
	require.NoError(t, err)
	require.Equal(t, entity.Approved, reviewed.Status)
	require.Equal(t, testutil.Reviewer.ID, reviewed.ReviewerID)

	// A second verdict does not credit twice and reports the standing one.
	_, err = d.Review(reviewerCtx, &model.ReviewSubmissionRequest{ID: submission.ID, Action: "approve"})
	require.Error(t, err)
	require.Equal(t, "The submission has already been approved", err.Error())

	var errx errorx.Error
	require.True(t, errors.As(err, &errx))
	require.Equal(t, errorx.AlreadyReviewed, errx.Code)

	user, err = userRepo.GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, testutil.Task1.Reward, user.Balance)
}

func Test_submissionDomain_GetPendingList(t *testing.T) {
	ctx := testutil.NewMockContext()
	testutil.CreateFixtureDb(ctx)
	submissionRepo := repository.NewSubmissionRepository()
	d := newSubmissionDomain(&testutil.MockStorage{})

	require.NoError(t, submissionRepo.Create(ctx, &entity.Submission{
		Base:   entity.Base{ID: "submission1"},
		TaskID: testutil.Task1.ID,
		UserID: testutil.User1.ID,
		Status: entity.Pending,
	}))
	require.NoError(t, submissionRepo.Create(ctx, &entity.Submission{
		Base:   entity.Base{ID: "submission2"},
		TaskID: testutil.Task1.ID,
		UserID: testutil.User2.ID,
		Status: entity.Rejected,
	}))

	// Only reviewers and admins see the queue.
	_, err := d.GetPendingList(testutil.NewMockContextWithUserID(ctx, testutil.User1.ID),
		&model.GetPendingSubmissionsRequest{})
	require.Error(t, err)

	resp, err := d.GetPendingList(testutil.NewMockContextWithUserID(ctx, testutil.Admin.ID),
		&model.GetPendingSubmissionsRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Submissions, 1)
	require.Equal(t, "submission1", resp.Submissions[0].ID)
}

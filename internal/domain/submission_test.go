package domain

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/pngfun/backend/internal/model"
	"github.com/pngfun/backend/internal/repository"
	"github.com/pngfun/backend/pkg/errorx"
	"github.com/pngfun/backend/pkg/storage"
	"github.com/pngfun/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func photoData(t *testing.T) string {
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, image.NewRGBA(image.Rect(0, 0, 8, 8))))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func newSubmissionDomain(fileStorage storage.Storage) *submissionDomain {
	return NewSubmissionDomain(
		repository.NewSubmissionRepository(),
		repository.NewChallengeRepository(),
		repository.NewUserRepository(),
		fileStorage,
	)
}

func Test_submissionDomain_Create(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	var uploaded *storage.UploadObject
	domain := newSubmissionDomain(&testutil.MockStorage{
		UploadFunc: func(ctx context.Context, obj *storage.UploadObject) (*storage.UploadResponse, error) {
			uploaded = obj
			return &storage.UploadResponse{
				Url:      "https://cdn.png.fun/" + obj.Bucket + "/" + obj.FileName,
				FileName: obj.FileName,
			}, nil
		},
	})

	resp, err := domain.Create(ctx, &model.CreateSubmissionRequest{
		ChallengeID: testutil.Challenge1.ID,
		UserID:      testutil.User3.ID,
		PhotoData:   photoData(t),
	})
	require.NoError(t, err)

	require.NotNil(t, uploaded)
	require.Equal(t, "pngfun", uploaded.Bucket)
	require.Equal(t, "image/jpeg", uploaded.Mime)
	require.True(t, strings.HasPrefix(uploaded.FileName, testutil.User3.ID+"/"))

	submission := resp.Submission
	require.NotEmpty(t, submission.ID)
	require.Equal(t, testutil.Challenge1.ID, submission.ChallengeID)
	require.Equal(t, testutil.User3.ID, submission.UserID)
	require.Equal(t, "https://cdn.png.fun/pngfun/"+uploaded.FileName, submission.PhotoURL)
	require.True(t, submission.Verified)
	require.Zero(t, submission.VoteCount)
	require.True(t, submission.TotalWLDVoted.IsZero())
	require.Nil(t, submission.Rank)
	require.Equal(t, "carol", *submission.User.Username)

	checkResp, err := domain.Check(ctx, &model.CheckSubmissionRequest{
		UserID:      testutil.User3.ID,
		ChallengeID: testutil.Challenge1.ID,
	})
	require.NoError(t, err)
	require.True(t, checkResp.Exists)
	require.Equal(t, submission.ID, checkResp.Submission.ID)
}

func Test_submissionDomain_Create_Failed(t *testing.T) {
	okStorage := &testutil.MockStorage{
		UploadFunc: func(ctx context.Context, obj *storage.UploadObject) (*storage.UploadResponse, error) {
			return &storage.UploadResponse{Url: "https://cdn.png.fun/" + obj.FileName}, nil
		},
	}
	brokenStorage := &testutil.MockStorage{
		UploadFunc: func(ctx context.Context, obj *storage.UploadObject) (*storage.UploadResponse, error) {
			return nil, errors.New("bucket is gone")
		},
	}

	tests := []struct {
		name       string
		storage    storage.Storage
		req        *model.CreateSubmissionRequest
		validPhoto bool
		wantErr    error
	}{
		{
			name:    "missing photo",
			storage: okStorage,
			req: &model.CreateSubmissionRequest{
				ChallengeID: testutil.Challenge1.ID,
				UserID:      testutil.User3.ID,
			},
			wantErr: errorx.New(errorx.BadRequest, "Missing required fields"),
		},
		{
			name:    "missing challenge",
			storage: okStorage,
			req: &model.CreateSubmissionRequest{
				UserID:    testutil.User3.ID,
				PhotoData: "abc",
			},
			wantErr: errorx.New(errorx.BadRequest, "Missing required fields"),
		},
		{
			name:    "already submitted",
			storage: okStorage,
			req: &model.CreateSubmissionRequest{
				ChallengeID: testutil.Challenge1.ID,
				UserID:      testutil.User1.ID,
				PhotoData:   "abc",
			},
			wantErr: errorx.New(errorx.AlreadyExists, "You have already submitted to this challenge"),
		},
		{
			name:    "challenge not found",
			storage: okStorage,
			req: &model.CreateSubmissionRequest{
				ChallengeID: "invalid-challenge",
				UserID:      testutil.User3.ID,
				PhotoData:   "abc",
			},
			wantErr: errorx.New(errorx.NotFound, "Challenge not found"),
		},
		{
			name:    "user not found",
			storage: okStorage,
			req: &model.CreateSubmissionRequest{
				ChallengeID: testutil.Challenge1.ID,
				UserID:      "invalid-user",
				PhotoData:   "abc",
			},
			wantErr: errorx.New(errorx.NotFound, "User not found"),
		},
		{
			name:    "invalid photo",
			storage: okStorage,
			req: &model.CreateSubmissionRequest{
				ChallengeID: testutil.Challenge1.ID,
				UserID:      testutil.User3.ID,
				PhotoData:   "data:image/png;base64,bm90IGFuIGltYWdl",
			},
			wantErr: errorx.New(errorx.BadRequest, "Invalid photo data"),
		},
		{
			name:    "upload failed",
			storage: brokenStorage,
			req: &model.CreateSubmissionRequest{
				ChallengeID: testutil.Challenge1.ID,
				UserID:      testutil.User3.ID,
			},
			validPhoto: true,
			wantErr:    errorx.Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testutil.MockContext()
			testutil.CreateFixtureDb(ctx)

			if tt.validPhoto {
				tt.req.PhotoData = photoData(t)
			}

			_, err := newSubmissionDomain(tt.storage).Create(ctx, tt.req)
			require.Equal(t, tt.wantErr, err)

			if tt.req.UserID == testutil.User3.ID && tt.req.ChallengeID == testutil.Challenge1.ID {
				_, err := repository.NewSubmissionRepository().GetByUserAndChallenge(ctx, tt.req.UserID, tt.req.ChallengeID)
				require.ErrorIs(t, err, gorm.ErrRecordNotFound)
			}
		})
	}
}

func Test_submissionDomain_GetList(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	domain := newSubmissionDomain(&testutil.MockStorage{})

	_, err := domain.GetList(ctx, &model.GetListSubmissionRequest{})
	require.Equal(t, errorx.New(errorx.BadRequest, "Challenge ID required"), err)

	resp, err := domain.GetList(ctx, &model.GetListSubmissionRequest{ChallengeID: testutil.Challenge1.ID})
	require.NoError(t, err)
	require.Len(t, resp.Submissions, 2)
	require.Equal(t, testutil.Submission2.ID, resp.Submissions[0].ID)
	require.Equal(t, "bob", *resp.Submissions[0].User.Username)
	require.Equal(t, testutil.Submission1.ID, resp.Submissions[1].ID)
	require.Equal(t, "alice", *resp.Submissions[1].User.Username)
	require.Equal(t, testutil.User1.ProfilePictureURL, resp.Submissions[1].User.ProfilePictureURL)

	resp, err = domain.GetList(ctx, &model.GetListSubmissionRequest{ChallengeID: "empty-challenge"})
	require.NoError(t, err)
	require.NotNil(t, resp.Submissions)
	require.Empty(t, resp.Submissions)
}

func Test_submissionDomain_Check(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	domain := newSubmissionDomain(&testutil.MockStorage{})

	_, err := domain.Check(ctx, &model.CheckSubmissionRequest{UserID: testutil.User1.ID})
	require.Equal(t, errorx.New(errorx.BadRequest, "Missing required fields"), err)

	resp, err := domain.Check(ctx, &model.CheckSubmissionRequest{
		UserID:      testutil.User1.ID,
		ChallengeID: testutil.Challenge1.ID,
	})
	require.NoError(t, err)
	require.True(t, resp.Exists)
	require.Equal(t, testutil.Submission1.ID, resp.Submission.ID)

	resp, err = domain.Check(ctx, &model.CheckSubmissionRequest{
		UserID:      testutil.User1.ID,
		ChallengeID: testutil.Challenge2.ID,
	})
	require.NoError(t, err)
	require.False(t, resp.Exists)
	require.Nil(t, resp.Submission)
}

package trust

import (
	"context"
	"errors"
	"testing"

	model "task-market.com/task-market/internal/models"
)

type fakeReader struct {
	profile    *model.Profile
	profileErr error
	count      int64
	countErr   error
}

func (f *fakeReader) FindProfile(ctx context.Context, userID string) (*model.Profile, error) {
	return f.profile, f.profileErr
}

func (f *fakeReader) CountTasksByOwner(ctx context.Context, ownerID string) (int64, error) {
	return f.count, f.countErr
}

func TestScorer_Score(t *testing.T) {
	tests := []struct {
		name         string
		reader       *fakeReader
		wantVerified bool
		wantCount    int
	}{
		{
			name:         "verified profile",
			reader:       &fakeReader{profile: &model.Profile{ID: "u1", Verified: true}, count: 2},
			wantVerified: true,
			wantCount:    2,
		},
		{
			name:         "profile lookup fails",
			reader:       &fakeReader{profileErr: errors.New("connection reset"), count: 7},
			wantVerified: false,
			wantCount:    7,
		},
		{
			name:         "count fails",
			reader:       &fakeReader{profile: &model.Profile{ID: "u1", Verified: true}, countErr: errors.New("timeout")},
			wantVerified: true,
			wantCount:    0,
		},
		{
			name:         "everything fails",
			reader:       &fakeReader{profileErr: errors.New("down"), countErr: errors.New("down")},
			wantVerified: false,
			wantCount:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewScorer(tt.reader).Score(context.Background(), "u1")
			if got.Verified != tt.wantVerified {
				t.Errorf("expected verified=%v, got %v", tt.wantVerified, got.Verified)
			}
			if got.PriorTaskCount != tt.wantCount {
				t.Errorf("expected count=%d, got %d", tt.wantCount, got.PriorTaskCount)
			}
		})
	}
}

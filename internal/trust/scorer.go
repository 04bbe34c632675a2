package trust

import (
	"context"
	"log"

	model "task-market.com/task-market/internal/models"
	"task-market.com/task-market/internal/moderation"
)

// ProfileReader is a privileged read path: it must see any user's profile
// and task count regardless of the caller's own visibility rules.
type ProfileReader interface {
	FindProfile(ctx context.Context, userID string) (*model.Profile, error)
	CountTasksByOwner(ctx context.Context, ownerID string) (int64, error)
}

type Scorer struct {
	reader ProfileReader
}

func NewScorer(reader ProfileReader) *Scorer {
	return &Scorer{reader: reader}
}

// Score never fails. A missing or unreadable profile counts as unverified and
// an unreadable task count as zero, so uncertainty cannot grant auto-approval.
func (s *Scorer) Score(ctx context.Context, userID string) moderation.TrustProfile {
	var trust moderation.TrustProfile

	profile, err := s.reader.FindProfile(ctx, userID)
	if err != nil {
		log.Printf("trust: profile lookup failed for user %s, treating as unverified: %v", userID, err)
	} else if profile != nil {
		trust.Verified = profile.Verified
	}

	count, err := s.reader.CountTasksByOwner(ctx, userID)
	if err != nil {
		log.Printf("trust: task count failed for user %s, defaulting to 0: %v", userID, err)
		count = 0
	}
	trust.PriorTaskCount = int(count)

	return trust
}

package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewScoreRecord(t *testing.T) {
	t.Parallel()
	profileID := uuid.New()
	at := time.Date(2025, time.March, 1, 9, 30, 0, 0, time.FixedZone("UTC+2", 2*60*60))

	rec := NewScoreRecord(profileID, 742, "account_added", at)

	assert.NotEqual(t, uuid.Nil, rec.ID)
	assert.Equal(t, profileID, rec.ProfileID)
	assert.Equal(t, 742, rec.Score)
	assert.Equal(t, ScoreBandVeryGood, rec.Band)
	assert.Equal(t, "account_added", rec.Reason)
	assert.True(t, rec.RecordedAt.Equal(at))
	assert.Equal(t, time.UTC, rec.RecordedAt.Location())
}

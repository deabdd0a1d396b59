package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildCanonicalKeyOrderIndependent(t *testing.T) {
	kickoffEarly := time.Date(2025, 9, 6, 19, 30, 0, 0, time.UTC)
	kickoffLate := time.Date(2025, 9, 6, 21, 0, 0, 0, time.UTC)

	// 同一天、两队顺序互换、开球时刻不同，键必须一致
	key1 := BuildCanonicalKey("Arsenal", "Chelsea", kickoffEarly, "PL")
	key2 := BuildCanonicalKey("Chelsea", "Arsenal", kickoffLate, "PL")
	assert.Equal(t, key1, key2)
}

func TestBuildCanonicalKeyNormalization(t *testing.T) {
	kickoff := time.Date(2025, 9, 6, 12, 0, 0, 0, time.UTC)

	// 大小写与多余空白不影响键
	key1 := BuildCanonicalKey("Real  Madrid ", "FC Barcelona", kickoff, "CL")
	key2 := BuildCanonicalKey("real madrid", "fc barcelona", kickoff, "cl")
	assert.Equal(t, key1, key2)

	// 键只含[a-z0-9_]
	assert.Regexp(t, `^[a-z0-9_]+$`, key1)
}

func TestBuildCanonicalKeyDayGranularity(t *testing.T) {
	day1 := time.Date(2025, 9, 6, 23, 50, 0, 0, time.UTC)
	day2 := time.Date(2025, 9, 7, 0, 10, 0, 0, time.UTC)

	// 跨天即不同场
	key1 := BuildCanonicalKey("Arsenal", "Chelsea", day1, "PL")
	key2 := BuildCanonicalKey("Arsenal", "Chelsea", day2, "PL")
	assert.NotEqual(t, key1, key2)
}

func TestBuildCanonicalKeyCompetitionPlaceholder(t *testing.T) {
	kickoff := time.Date(2025, 9, 6, 12, 0, 0, 0, time.UTC)

	// competition缺失使用占位符，与带competition的键区分开
	keyNone := BuildCanonicalKey("Arsenal", "Chelsea", kickoff, "")
	keyPL := BuildCanonicalKey("Arsenal", "Chelsea", kickoff, "PL")
	assert.NotEqual(t, keyNone, keyPL)
	assert.Contains(t, keyNone, unknownCompetition)
}

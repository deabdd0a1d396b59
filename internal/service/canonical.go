package service

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// unknownCompetition competition_id缺失时的占位标识
const unknownCompetition = "unknown"

var keyCharset = regexp.MustCompile(`[^a-z0-9_]+`)

// BuildCanonicalKey 规范化队名 + 比赛日期 + 赛事ID生成确定性唯一键。
// 两队按字典序排列，保证"A vs B"与"B vs A"命中同一键；日期只取天粒度，
// 刻意忽略数据商原生ID（不同平台对同一场比赛的ID各不相同）。
func BuildCanonicalKey(homeTeam, awayTeam string, kickoff time.Time, competitionID string) string {
	date := kickoff.UTC().Format("2006-01-02")
	a := normalizeTeam(homeTeam)
	b := normalizeTeam(awayTeam)
	if a > b {
		a, b = b, a
	}
	comp := strings.ToLower(strings.TrimSpace(competitionID))
	if comp == "" {
		comp = unknownCompetition
	}
	key := fmt.Sprintf("%s_%s_%s_%s", date, a, b, comp)
	return keyCharset.ReplaceAllString(key, "")
}

// normalizeTeam 小写化并压缩空白
func normalizeTeam(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

package store

import (
	"fmt"
	"math"
	"strings"
)

// Stats computes the aggregate over posts joined with interactions,
// optionally filtered. Posts without an interaction row contribute 0 to
// each metric and still count toward total_posts. An empty result yields
// zeroes rather than an error.
func (s *Store) Stats(filter StatsFilter) (*PostStats, error) {
	var conditions []string
	var args []any

	if filter.PromptVersion != "" {
		conditions = append(conditions, "p.prompt_version = ?")
		args = append(args, filter.PromptVersion)
	}
	if filter.Level != "" {
		conditions = append(conditions, "p.level = ?")
		args = append(args, filter.Level)
	}
	if filter.Word != "" {
		conditions = append(conditions, "p.word = ?")
		args = append(args, filter.Word)
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	var st PostStats
	err := s.db.QueryRow(`
		SELECT
			COUNT(*),
			COALESCE(AVG(COALESCE(i.likes, 0)), 0),
			COALESCE(AVG(COALESCE(i.favorites, 0)), 0),
			COALESCE(AVG(COALESCE(i.comments, 0)), 0),
			COALESCE(AVG(COALESCE(i.views, 0)), 0),
			COALESCE(SUM(COALESCE(i.likes, 0)), 0),
			COALESCE(SUM(COALESCE(i.favorites, 0)), 0),
			COALESCE(SUM(COALESCE(i.comments, 0)), 0)
		FROM posts p
		LEFT JOIN interactions i ON p.id = i.post_id
		`+where, args...).Scan(
		&st.TotalPosts,
		&st.AvgLikes, &st.AvgFavorites, &st.AvgComments, &st.AvgViews,
		&st.TotalLikes, &st.TotalFavorites, &st.TotalComments,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}

	st.AvgLikes = round2(st.AvgLikes)
	st.AvgFavorites = round2(st.AvgFavorites)
	st.AvgComments = round2(st.AvgComments)
	st.AvgViews = round2(st.AvgViews)
	return &st, nil
}

// CompareByPromptVersion returns one row per distinct prompt version,
// ordered by average likes descending.
func (s *Store) CompareByPromptVersion() ([]VersionStats, error) {
	rows, err := s.db.Query(`
		SELECT
			p.prompt_version,
			COUNT(*),
			COALESCE(AVG(COALESCE(i.likes, 0)), 0) AS avg_likes,
			COALESCE(AVG(COALESCE(i.favorites, 0)), 0),
			COALESCE(AVG(COALESCE(i.comments, 0)), 0)
		FROM posts p
		LEFT JOIN interactions i ON p.id = i.post_id
		GROUP BY p.prompt_version
		ORDER BY avg_likes DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to compare prompt versions: %w", err)
	}
	defer rows.Close()

	var results []VersionStats
	for rows.Next() {
		var vs VersionStats
		if err := rows.Scan(&vs.PromptVersion, &vs.TotalPosts, &vs.AvgLikes, &vs.AvgFavorites, &vs.AvgComments); err != nil {
			return nil, err
		}
		vs.AvgLikes = round2(vs.AvgLikes)
		vs.AvgFavorites = round2(vs.AvgFavorites)
		vs.AvgComments = round2(vs.AvgComments)
		results = append(results, vs)
	}
	return results, rows.Err()
}

// CompareByLevel returns one row per difficulty level, ordered by average
// likes descending. Posts without a level are grouped under
// LevelUnspecified rather than dropped.
func (s *Store) CompareByLevel() ([]LevelStats, error) {
	rows, err := s.db.Query(`
		SELECT
			COALESCE(p.level, ?),
			COUNT(*),
			COALESCE(AVG(COALESCE(i.likes, 0)), 0) AS avg_likes,
			COALESCE(AVG(COALESCE(i.favorites, 0)), 0),
			COALESCE(AVG(COALESCE(i.comments, 0)), 0)
		FROM posts p
		LEFT JOIN interactions i ON p.id = i.post_id
		GROUP BY COALESCE(p.level, ?)
		ORDER BY avg_likes DESC
	`, LevelUnspecified, LevelUnspecified)
	if err != nil {
		return nil, fmt.Errorf("failed to compare levels: %w", err)
	}
	defer rows.Close()

	var results []LevelStats
	for rows.Next() {
		var ls LevelStats
		if err := rows.Scan(&ls.Level, &ls.TotalPosts, &ls.AvgLikes, &ls.AvgFavorites, &ls.AvgComments); err != nil {
			return nil, err
		}
		ls.AvgLikes = round2(ls.AvgLikes)
		ls.AvgFavorites = round2(ls.AvgFavorites)
		ls.AvgComments = round2(ls.AvgComments)
		results = append(results, ls)
	}
	return results, rows.Err()
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

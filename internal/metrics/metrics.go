package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PostsCreated counts successfully created posts.
	PostsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "talehaven_posts_created_total",
		Help: "Number of posts created.",
	})

	// PostsDeleted counts successfully deleted posts.
	PostsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "talehaven_posts_deleted_total",
		Help: "Number of posts deleted.",
	})

	// FollowToggles counts follow graph mutations by direction.
	FollowToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "talehaven_follow_toggles_total",
		Help: "Number of follow/unfollow transitions.",
	}, []string{"direction"})

	// LikeToggles counts like mutations by direction.
	LikeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "talehaven_like_toggles_total",
		Help: "Number of like/unlike transitions.",
	}, []string{"direction"})

	// NotificationsCreated counts fan-out notifications by type.
	NotificationsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "talehaven_notifications_created_total",
		Help: "Number of notifications fanned out.",
	}, []string{"type"})
)

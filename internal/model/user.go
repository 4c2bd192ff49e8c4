package model

import "time"

type User struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	ProfileImageURL string    `json:"profileImageUrl"`
	CreatedAt       time.Time `json:"createdAt"`
	Bio             string    `json:"bio,omitempty"`
	Website         string    `json:"website,omitempty"`
}

// FollowStats are the follower/following counts shown on a profile.
type FollowStats struct {
	Followers int `json:"followers"`
	Following int `json:"following"`
}

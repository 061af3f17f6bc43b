// Package store implements a small immutable state container for API
// consumers. State transitions are pure: Apply never mutates the input
// state, it returns a new one.
package store

import (
	"devlink/internal/github"
	"devlink/internal/models"
)

// IntentKind identifies a state transition.
type IntentKind string

const (
	// Auth intents
	LoginSuccess    IntentKind = "LOGIN_SUCCESS"
	RegisterSuccess IntentKind = "REGISTER_SUCCESS"
	UserLoaded      IntentKind = "USER_LOADED"
	AuthError       IntentKind = "AUTH_ERROR"
	LoginFail       IntentKind = "LOGIN_FAIL"
	RegisterFail    IntentKind = "REGISTER_FAIL"
	Logout          IntentKind = "LOGOUT"
	AccountDeleted  IntentKind = "ACCOUNT_DELETED"

	// Profile intents
	ProfileLoaded  IntentKind = "GET_PROFILE"
	ProfilesLoaded IntentKind = "GET_PROFILES"
	ProfileUpdated IntentKind = "UPDATE_PROFILE"
	ProfileError   IntentKind = "PROFILE_ERROR"
	ClearProfile   IntentKind = "CLEAR_PROFILE"
	ReposLoaded    IntentKind = "GET_REPOS"

	// Post intents
	PostsLoaded    IntentKind = "GET_POSTS"
	PostLoaded     IntentKind = "GET_POST"
	PostAdded      IntentKind = "ADD_POST"
	PostDeleted    IntentKind = "DELETE_POST"
	LikesUpdated   IntentKind = "UPDATE_LIKES"
	CommentAdded   IntentKind = "ADD_COMMENT"
	CommentRemoved IntentKind = "REMOVE_COMMENT"
	PostError      IntentKind = "POST_ERROR"

	// Alert intents
	AlertSet     IntentKind = "SET_ALERT"
	AlertRemoved IntentKind = "REMOVE_ALERT"
)

// Alert is a transient UI notification.
type Alert struct {
	ID      string
	Msg     string
	Variant string
}

// Intent carries a transition kind plus whichever payload fields the kind
// uses. Unused fields are ignored.
type Intent struct {
	Kind      IntentKind
	Token     string
	User      *models.User
	Profile   *models.Profile
	Profiles  []models.Profile
	Repos     []github.Repo
	Posts     []models.Post
	Post      *models.Post
	PostID    uint
	Likes     []models.Like
	Comments  []models.Comment
	CommentID uint
	Alert     *Alert
	AlertID   string
	ErrorMsg  string
	Status    int
}

// AuthState tracks the session.
type AuthState struct {
	Token           string
	IsAuthenticated bool
	Loading         bool
	User            *models.User
}

// ProfileState tracks the viewed profile, the browse list, and GitHub repos.
type ProfileState struct {
	Profile  *models.Profile
	Profiles []models.Profile
	Repos    []github.Repo
	Loading  bool
	ErrorMsg string
}

// PostState tracks the feed and the open post.
type PostState struct {
	Posts    []models.Post
	Post     *models.Post
	Loading  bool
	ErrorMsg string
}

// State is the complete container state.
type State struct {
	Auth    AuthState
	Profile ProfileState
	Posts   PostState
	Alerts  []Alert
}

// NewState returns the initial state: nothing loaded, everything pending.
func NewState() State {
	return State{
		Auth:    AuthState{Loading: true},
		Profile: ProfileState{Loading: true},
		Posts:   PostState{Loading: true},
	}
}

// Apply returns the state after the intent. The input state is never
// modified; slices are copied before any change.
func Apply(s State, in Intent) State {
	switch in.Kind {
	case LoginSuccess, RegisterSuccess:
		s.Auth.Token = in.Token
		s.Auth.IsAuthenticated = true
		s.Auth.Loading = false

	case UserLoaded:
		s.Auth.IsAuthenticated = true
		s.Auth.Loading = false
		s.Auth.User = in.User

	case AuthError, LoginFail, RegisterFail, Logout, AccountDeleted:
		s.Auth = AuthState{}
		// Leaving the session also drops profile state.
		s.Profile = ProfileState{Loading: true}

	case ProfileLoaded, ProfileUpdated:
		s.Profile.Profile = in.Profile
		s.Profile.Loading = false
		s.Profile.ErrorMsg = ""

	case ProfilesLoaded:
		s.Profile.Profiles = append([]models.Profile(nil), in.Profiles...)
		s.Profile.Loading = false

	case ReposLoaded:
		s.Profile.Repos = append([]github.Repo(nil), in.Repos...)
		s.Profile.Loading = false

	case ProfileError:
		s.Profile.Profile = nil
		s.Profile.Loading = false
		s.Profile.ErrorMsg = in.ErrorMsg

	case ClearProfile:
		s.Profile.Profile = nil
		s.Profile.Repos = nil
		s.Profile.Loading = false

	case PostsLoaded:
		s.Posts.Posts = append([]models.Post(nil), in.Posts...)
		s.Posts.Loading = false

	case PostLoaded:
		s.Posts.Post = in.Post
		s.Posts.Loading = false

	case PostAdded:
		if in.Post != nil {
			// New posts go to the front of the feed.
			posts := make([]models.Post, 0, len(s.Posts.Posts)+1)
			posts = append(posts, *in.Post)
			posts = append(posts, s.Posts.Posts...)
			s.Posts.Posts = posts
		}
		s.Posts.Loading = false

	case PostDeleted:
		posts := make([]models.Post, 0, len(s.Posts.Posts))
		for _, p := range s.Posts.Posts {
			if p.ID != in.PostID {
				posts = append(posts, p)
			}
		}
		s.Posts.Posts = posts
		s.Posts.Loading = false

	case LikesUpdated:
		posts := append([]models.Post(nil), s.Posts.Posts...)
		for i := range posts {
			if posts[i].ID == in.PostID {
				posts[i].Likes = append([]models.Like(nil), in.Likes...)
			}
		}
		s.Posts.Posts = posts
		if s.Posts.Post != nil && s.Posts.Post.ID == in.PostID {
			post := *s.Posts.Post
			post.Likes = append([]models.Like(nil), in.Likes...)
			s.Posts.Post = &post
		}

	case CommentAdded:
		if s.Posts.Post != nil {
			post := *s.Posts.Post
			post.Comments = append([]models.Comment(nil), in.Comments...)
			s.Posts.Post = &post
		}
		s.Posts.Loading = false

	case CommentRemoved:
		if s.Posts.Post != nil {
			post := *s.Posts.Post
			comments := make([]models.Comment, 0, len(post.Comments))
			for _, c := range post.Comments {
				if c.ID != in.CommentID {
					comments = append(comments, c)
				}
			}
			post.Comments = comments
			s.Posts.Post = &post
		}
		s.Posts.Loading = false

	case PostError:
		s.Posts.ErrorMsg = in.ErrorMsg
		s.Posts.Loading = false

	case AlertSet:
		if in.Alert != nil {
			s.Alerts = append(append([]Alert(nil), s.Alerts...), *in.Alert)
		}

	case AlertRemoved:
		alerts := make([]Alert, 0, len(s.Alerts))
		for _, a := range s.Alerts {
			if a.ID != in.AlertID {
				alerts = append(alerts, a)
			}
		}
		s.Alerts = alerts
	}

	return s
}

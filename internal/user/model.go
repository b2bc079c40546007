package user

// User is the account behind a bearer token: one restaurant, one login.
type User struct {
	ID             string `json:"id"`
	RestaurantName string `json:"restaurantName"`
	Email          string `json:"email"`
}

// Profile is the editable account record kept by the backend.
type Profile struct {
	ID             string `json:"_id"`
	RestaurantName string `json:"restaurantName"`
	Email          string `json:"email"`
	PhoneNumber    string `json:"phoneNumber"`
}

type RegisterParams struct {
	RestaurantName string `json:"restaurantName"`
	Email          string `json:"email"`
	Password       string `json:"password"`
}

// UpdateProfileParams carries a full profile update. Password is only
// sent when the owner typed a new one.
type UpdateProfileParams struct {
	RestaurantName string  `json:"restaurantName"`
	Email          string  `json:"email"`
	PhoneNumber    string  `json:"phoneNumber"`
	Password       *string `json:"password,omitempty"`
}

// Session is a read-only snapshot of the auth state. IsLoading is true
// only before the store has finished reading persisted credentials.
type Session struct {
	User            *User
	Token           string
	IsAuthenticated bool
	IsLoading       bool
}

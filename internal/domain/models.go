package domain

type Category struct {
	ID          string `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`
	CreatedAt   string `db:"created_at" json:"created_at"`
	UpdatedAt   string `db:"updated_at" json:"updated_at,omitempty"`
}

type Product struct {
	ID            string  `db:"id" json:"id"`
	CategoryID    string  `db:"category_id" json:"category_id"`
	Name          string  `db:"name" json:"name"`
	Description   string  `db:"description" json:"description"`
	Price         float64 `db:"price" json:"price"`
	StockQuantity int     `db:"stock_quantity" json:"stock_quantity"`
	ImagesJSON    string  `db:"images_json" json:"-"`
	DetailsJSON   string  `db:"details_json" json:"-"` // technical details, key/value
	Active        bool    `db:"active" json:"active"`
	CreatedAt     string  `db:"created_at" json:"created_at"`
	UpdatedAt     string  `db:"updated_at" json:"updated_at,omitempty"`
}

// Address is one entry of a user's address book, kept in the kv store.
type Address struct {
	ID           string `json:"id"`
	Nickname     string `json:"nickname"`
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zipCode"`
	Default      bool   `json:"default"`
}

// Preferences are the user's communication opt-ins.
type Preferences struct {
	EmailMarketing  bool `json:"emailMarketing"`
	OrderUpdates    bool `json:"orderUpdates"`
	PasswordChanges bool `json:"passwordChanges"`
}

// DefaultPreferences mirrors the opt-ins a fresh account starts with.
func DefaultPreferences() Preferences {
	return Preferences{EmailMarketing: false, OrderUpdates: true, PasswordChanges: true}
}

type Profile struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	BirthDate string `json:"birthDate,omitempty"`
}

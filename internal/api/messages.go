package api

// Messages exchanged by the RPC services. Amounts are decimal numbers in the
// group's currency; usernames identify members everywhere.

type Empty struct{}

type User struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

type RegisterRequest struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Password    string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User      *User  `json:"user"`
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}

type GetCurrentUserRequest struct{}

type GetUserRequest struct {
	Username string `json:"username"`
}

type UpdateProfileRequest struct {
	DisplayName string `json:"display_name"`
}

type UserResponse struct {
	User *User `json:"user"`
}

type Member struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Registered  bool   `json:"registered"`
}

type Group struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Emoji     string    `json:"emoji"`
	CreatedBy string    `json:"created_by"`
	Members   []*Member `json:"members"`
	CreatedAt int64     `json:"created_at"`
}

type CreateGroupRequest struct {
	Name    string   `json:"name"`
	Emoji   string   `json:"emoji"`
	Members []string `json:"members"`
}

type GetGroupRequest struct {
	GroupID string `json:"group_id"`
}

type GroupResponse struct {
	Group *Group `json:"group"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []*Group `json:"groups"`
}

type UpdateGroupRequest struct {
	GroupID string `json:"group_id"`
	Name    string `json:"name"`
	Emoji   string `json:"emoji"`
}

type AddMembersRequest struct {
	GroupID string   `json:"group_id"`
	Members []string `json:"members"`
}

type RemoveMemberRequest struct {
	GroupID string `json:"group_id"`
	Member  string `json:"member"`
}

type DeleteGroupRequest struct {
	GroupID string `json:"group_id"`
}

type Expense struct {
	ID           string   `json:"id"`
	GroupID      string   `json:"group_id"`
	Title        string   `json:"title"`
	Amount       float64  `json:"amount"`
	PaidBy       []string `json:"paid_by"`
	Participants []string `json:"participants"`
	CreatedBy    string   `json:"created_by"`
	CreatedAt    int64    `json:"created_at"`
	IsSettlement bool     `json:"is_settlement"`
}

type CreateExpenseRequest struct {
	GroupID      string   `json:"group_id"`
	Title        string   `json:"title"`
	Amount       float64  `json:"amount"`
	PaidBy       []string `json:"paid_by"`
	Participants []string `json:"participants"`
}

type ExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type GetExpenseRequest struct {
	ExpenseID string `json:"expense_id"`
}

type ListExpensesRequest struct {
	GroupID string `json:"group_id"`
}

type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

type DeleteExpenseRequest struct {
	ExpenseID string `json:"expense_id"`
}

type MemberBalance struct {
	Member string  `json:"member"`
	Net    float64 `json:"net"` // Positive = owed money, Negative = owes money
	Paid   float64 `json:"paid"`
	Owed   float64 `json:"owed"`
}

type Transfer struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

type GetBalancesRequest struct {
	GroupID string `json:"group_id"`
}

type GetBalancesResponse struct {
	Balances  []*MemberBalance `json:"balances"`
	Transfers []*Transfer      `json:"transfers"`
	MyBalance float64          `json:"my_balance"`
}

type SettleUpRequest struct {
	GroupID string  `json:"group_id"`
	From    string  `json:"from"`
	To      string  `json:"to"`
	Amount  float64 `json:"amount"`
}

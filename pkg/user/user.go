package user

// User is an employee who logs timesheets and plans forecast allocations.
type User struct {
	Id          int
	Uid         string
	Username    string
	DisplayName string
}

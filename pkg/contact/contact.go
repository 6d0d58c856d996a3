package contact

type Contact struct {
	Id        int
	CompanyId int
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Role      string
}

// Package company defines the Company aggregate, its owned Employee records
// and the write-side CompanyDto.
package company

// Company is the aggregate root. Employees are only populated by the
// aggregation reads (GetMultipleResults, MultipleMapping).
type Company struct {
	ID        int        `json:"id" bun:"id,pk,autoincrement"`
	Name      string     `json:"name" bun:"name"`
	Address   string     `json:"address" bun:"address"`
	Country   string     `json:"country" bun:"country"`
	Employees []Employee `json:"employees" bun:"-"`
}

// Employee is owned by a Company. CompanyID is only used for the join.
type Employee struct {
	ID        int    `json:"id" bun:"id,pk,autoincrement"`
	Name      string `json:"name" bun:"name"`
	Age       int    `json:"age" bun:"age"`
	Position  string `json:"position" bun:"position"`
	CompanyID int    `json:"companyId" bun:"company_id"`
}

// CompanyDto is the create/update shape. It never carries employees.
type CompanyDto struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Country string `json:"country"`
}

// FromDto builds a Company with the given store assigned identity.
func FromDto(id int, dto CompanyDto) Company {
	return Company{
		ID:        id,
		Name:      dto.Name,
		Address:   dto.Address,
		Country:   dto.Country,
		Employees: []Employee{},
	}
}

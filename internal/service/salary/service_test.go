package salary

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/audit"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/salary"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeSalaryRepo struct {
	rows map[string]salary.SalaryStructure
}

func (f *fakeSalaryRepo) Create(_ context.Context, s salary.SalaryStructure) (salary.SalaryStructure, error) {
	if _, ok := f.rows[s.EmployeeID]; ok {
		return salary.SalaryStructure{}, salary.ErrSalaryStructureExists
	}
	s.ID = "sal-" + s.EmployeeID
	f.rows[s.EmployeeID] = s
	return s, nil
}

func (f *fakeSalaryRepo) GetByEmployeeID(_ context.Context, employeeID string) (salary.SalaryStructure, error) {
	s, ok := f.rows[employeeID]
	if !ok {
		return salary.SalaryStructure{}, salary.ErrSalaryStructureNotFound
	}
	return s, nil
}

func (f *fakeSalaryRepo) Update(_ context.Context, s salary.SalaryStructure) (salary.SalaryStructure, error) {
	f.rows[s.EmployeeID] = s
	return s, nil
}

func (f *fakeSalaryRepo) DeleteByEmployeeID(_ context.Context, employeeID string) error {
	delete(f.rows, employeeID)
	return nil
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	known map[string]bool
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	if !f.known[id] {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return employee.Employee{ID: id}, nil
}

type fakeAudit struct {
	audit.AuditService
	actions []audit.Action
}

func (f *fakeAudit) Log(_ context.Context, _ string, action audit.Action, _ string, _ string, _, _ any) error {
	f.actions = append(f.actions, action)
	return nil
}

func newTestService() (*SalaryServiceImpl, *fakeSalaryRepo, *fakeAudit) {
	repo := &fakeSalaryRepo{rows: map[string]salary.SalaryStructure{}}
	auditLog := &fakeAudit{}
	svc := NewSalaryService(passthroughTx{}, repo, &fakeEmployeeRepo{known: map[string]bool{"emp-1": true}}, auditLog)
	return svc.(*SalaryServiceImpl), repo, auditLog
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func validCreate() salary.CreateSalaryStructureRequest {
	return salary.CreateSalaryStructureRequest{
		EmployeeID:  "emp-1",
		BasicSalary: d("30000"),
		HRA:         d("5000"),
		Allowances:  d("2000"),
		Deductions:  d("500"),
		PF:          d("1800"),
		Tax:         d("700"),
	}
}

func TestCreateSalaryStructure(t *testing.T) {
	svc, repo, auditLog := newTestService()

	resp, err := svc.CreateSalaryStructure(context.Background(), validCreate())
	require.NoError(t, err)

	assert.True(t, resp.NetSalary.Equal(d("34000")), "net = %s", resp.NetSalary)
	assert.True(t, repo.rows["emp-1"].NetSalary.Equal(d("34000")))
	assert.Equal(t, []audit.Action{audit.ActionCreate}, auditLog.actions)

	_, err = svc.CreateSalaryStructure(context.Background(), validCreate())
	assert.ErrorIs(t, err, salary.ErrSalaryStructureExists)
}

func TestCreateSalaryStructure_Rejects(t *testing.T) {
	svc, _, _ := newTestService()

	unknown := validCreate()
	unknown.EmployeeID = "emp-404"
	_, err := svc.CreateSalaryStructure(context.Background(), unknown)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	negative := validCreate()
	negative.Tax = d("-1")
	_, err = svc.CreateSalaryStructure(context.Background(), negative)
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "must be non-negative", verrs.ToMap()["tax"])

	zero := validCreate()
	zero.BasicSalary = decimal.Zero
	_, err = svc.CreateSalaryStructure(context.Background(), zero)
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "basic_salary")
}

func TestUpdateSalaryStructure_RecomputesNet(t *testing.T) {
	svc, repo, auditLog := newTestService()
	_, err := svc.CreateSalaryStructure(context.Background(), validCreate())
	require.NoError(t, err)

	bonus := d("4000")
	resp, err := svc.UpdateSalaryStructure(context.Background(), salary.UpdateSalaryStructureRequest{
		EmployeeID: "emp-1",
		Allowances: &bonus,
	})
	require.NoError(t, err)

	assert.True(t, resp.NetSalary.Equal(d("36000")), "net = %s", resp.NetSalary)
	assert.True(t, repo.rows["emp-1"].BasicSalary.Equal(d("30000")))
	assert.Equal(t, []audit.Action{audit.ActionCreate, audit.ActionUpdate}, auditLog.actions)

	_, err = svc.UpdateSalaryStructure(context.Background(), salary.UpdateSalaryStructureRequest{
		EmployeeID: "emp-2",
		Allowances: &bonus,
	})
	assert.ErrorIs(t, err, salary.ErrSalaryStructureNotFound)
}

func TestDeleteSalaryStructure(t *testing.T) {
	svc, repo, auditLog := newTestService()
	_, err := svc.CreateSalaryStructure(context.Background(), validCreate())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSalaryStructure(context.Background(), "emp-1"))
	assert.Empty(t, repo.rows)
	assert.Equal(t, audit.ActionDelete, auditLog.actions[len(auditLog.actions)-1])

	err = svc.DeleteSalaryStructure(context.Background(), "emp-1")
	assert.ErrorIs(t, err, salary.ErrSalaryStructureNotFound)

	_, err = svc.GetSalaryStructureByEmployee(context.Background(), "emp-1")
	assert.ErrorIs(t, err, salary.ErrSalaryStructureNotFound)
}

package leave

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Policy holds the yearly allocations and the carry-forward rule.
type Policy struct {
	DefaultAllocations map[LeaveType]decimal.Decimal
	CarryForwardType   LeaveType
	MaxCarryForward    decimal.Decimal
}

func DefaultPolicy() Policy {
	return Policy{
		DefaultAllocations: map[LeaveType]decimal.Decimal{
			LeaveTypeCasual: decimal.NewFromInt(12),
			LeaveTypeSick:   decimal.NewFromInt(12),
			LeaveTypeEarned: decimal.NewFromInt(21),
		},
		CarryForwardType: LeaveTypeEarned,
		MaxCarryForward:  decimal.NewFromInt(5),
	}
}

// Allocation returns the yearly allocation for t, zero for untracked types.
func (p Policy) Allocation(t LeaveType) decimal.Decimal {
	if v, ok := p.DefaultAllocations[t]; ok {
		return v
	}
	return decimal.Zero
}

// CarryForward returns min(remaining, MaxCarryForward), never below zero.
func (p Policy) CarryForward(remaining decimal.Decimal) decimal.Decimal {
	carry := decimal.Min(remaining, p.MaxCarryForward)
	if carry.IsNegative() {
		return decimal.Zero
	}
	return carry
}

// NextYearBalances builds the rows opened for year with carry added to the carried type.
func (p Policy) NextYearBalances(employeeID string, year int, carry decimal.Decimal) []LeaveBalance {
	balances := make([]LeaveBalance, 0, len(TrackedLeaveTypes))
	for _, t := range TrackedLeaveTypes {
		allocated := p.Allocation(t)
		if t == p.CarryForwardType {
			allocated = allocated.Add(carry)
		}
		balances = append(balances, NewLeaveBalance(employeeID, t, year, allocated))
	}
	return balances
}

type policyFile struct {
	Allocations struct {
		Casual *float64 `yaml:"casual"`
		Sick   *float64 `yaml:"sick"`
		Earned *float64 `yaml:"earned"`
	} `yaml:"allocations"`
	CarryForward struct {
		Type    string   `yaml:"type"`
		MaxDays *float64 `yaml:"max_days"`
	} `yaml:"carry_forward"`
}

// LoadPolicy reads a YAML policy file; fields left out keep their defaults.
// An empty path returns DefaultPolicy.
//
//	allocations:
//	  casual: 12
//	  sick: 12
//	  earned: 21
//	carry_forward:
//	  type: Earned
//	  max_days: 5
func LoadPolicy(path string) (Policy, error) {
	policy := DefaultPolicy()
	if path == "" {
		return policy, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("failed to read leave policy: %w", err)
	}
	return ParsePolicy(raw)
}

func ParsePolicy(raw []byte) (Policy, error) {
	policy := DefaultPolicy()

	var file policyFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return Policy{}, fmt.Errorf("%w: %v", ErrInvalidLeavePolicy, err)
	}

	set := func(t LeaveType, v *float64) error {
		if v == nil {
			return nil
		}
		if *v < 0 {
			return fmt.Errorf("%w: %s allocation must be non-negative", ErrInvalidLeavePolicy, t)
		}
		policy.DefaultAllocations[t] = decimal.NewFromFloat(*v)
		return nil
	}
	if err := set(LeaveTypeCasual, file.Allocations.Casual); err != nil {
		return Policy{}, err
	}
	if err := set(LeaveTypeSick, file.Allocations.Sick); err != nil {
		return Policy{}, err
	}
	if err := set(LeaveTypeEarned, file.Allocations.Earned); err != nil {
		return Policy{}, err
	}

	if file.CarryForward.Type != "" {
		t := LeaveType(file.CarryForward.Type)
		if !t.IsBalanceTracked() {
			return Policy{}, fmt.Errorf("%w: carry forward type %q is not balance tracked", ErrInvalidLeavePolicy, t)
		}
		policy.CarryForwardType = t
	}
	if file.CarryForward.MaxDays != nil {
		if *file.CarryForward.MaxDays < 0 {
			return Policy{}, fmt.Errorf("%w: carry forward max_days must be non-negative", ErrInvalidLeavePolicy)
		}
		policy.MaxCarryForward = decimal.NewFromFloat(*file.CarryForward.MaxDays)
	}

	return policy, nil
}

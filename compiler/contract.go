package compiler

import (
	"errors"
	"fmt"
)

// Stage is a pipeline stage that can fail.
type Stage string

const (
	StageConfig    Stage = "CONFIG"
	StageSource    Stage = "SOURCE"
	StageSynthesis Stage = "SYNTHESIS"
	StageEmit      Stage = "EMIT"
)

// ContractError is a typed pipeline error carrying its stage and a stable code.
type ContractError struct {
	Stage Stage
	Code  string
	Op    string
	Err   error
}

func (e *ContractError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Op == "" {
		return fmt.Sprintf("[%s:%s] %v", e.Stage, e.Code, e.Err)
	}
	return fmt.Sprintf("[%s:%s] %s: %v", e.Stage, e.Code, e.Op, e.Err)
}

func (e *ContractError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// WrapContractError wraps err into ContractError and keeps the cause chain.
func WrapContractError(stage Stage, code, op string, err error) error {
	if err == nil {
		return nil
	}
	return &ContractError{
		Stage: stage,
		Code:  code,
		Op:    op,
		Err:   err,
	}
}

// ErrorCode returns the stable code of the first ContractError in err's chain.
func ErrorCode(err error) string {
	var ce *ContractError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}

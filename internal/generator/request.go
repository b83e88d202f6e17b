package generator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/2beens/ironai/internal/fitness"
)

var ErrInvalidRequest = errors.New("invalid generation request")

// Used when a plan request omits the field entirely.
var (
	DefaultDifficulty   = fitness.DifficultyIntermediate
	DefaultEquipment    = []fitness.Equipment{fitness.EquipmentDumbbells, fitness.EquipmentBodyweight}
	DefaultTargetMuscle = fitness.MuscleGroupFullBody
)

type PlanRequest struct {
	Difficulty fitness.Difficulty `json:"difficulty"`
	// Equipment is nil when omitted; an explicitly empty list is rejected.
	Equipment    []fitness.Equipment `json:"equipment"`
	TargetMuscle fitness.MuscleGroup `json:"targetMuscle"`
}

// WithDefaults fills in the omitted fields.
func (r PlanRequest) WithDefaults() PlanRequest {
	if r.Difficulty == "" {
		r.Difficulty = DefaultDifficulty
	}
	if r.Equipment == nil {
		r.Equipment = append([]fitness.Equipment(nil), DefaultEquipment...)
	}
	if r.TargetMuscle == "" {
		r.TargetMuscle = DefaultTargetMuscle
	}
	return r
}

func (r PlanRequest) Validate() error {
	if err := validateCommon(r.Difficulty, r.Equipment); err != nil {
		return err
	}
	if !r.TargetMuscle.IsValid() {
		return fmt.Errorf("%w: unknown target muscle [%s]", ErrInvalidRequest, r.TargetMuscle)
	}
	return nil
}

// RouletteRequest asks for a single exercise challenge. An empty target muscle is picked at random.
type RouletteRequest struct {
	Difficulty   fitness.Difficulty  `json:"difficulty"`
	Equipment    []fitness.Equipment `json:"equipment"`
	TargetMuscle fitness.MuscleGroup `json:"targetMuscle,omitempty"`
}

func (r RouletteRequest) WithDefaults() RouletteRequest {
	if r.Difficulty == "" {
		r.Difficulty = DefaultDifficulty
	}
	if r.Equipment == nil {
		r.Equipment = append([]fitness.Equipment(nil), DefaultEquipment...)
	}
	return r
}

func (r RouletteRequest) Validate() error {
	if err := validateCommon(r.Difficulty, r.Equipment); err != nil {
		return err
	}
	if r.TargetMuscle != "" && !r.TargetMuscle.IsValid() {
		return fmt.Errorf("%w: unknown target muscle [%s]", ErrInvalidRequest, r.TargetMuscle)
	}
	return nil
}

func validateCommon(difficulty fitness.Difficulty, equipment []fitness.Equipment) error {
	if !difficulty.IsValid() {
		return fmt.Errorf("%w: unknown difficulty [%s]", ErrInvalidRequest, difficulty)
	}
	if len(equipment) == 0 {
		return fmt.Errorf("%w: equipment set is empty", ErrInvalidRequest)
	}
	for _, eq := range equipment {
		if !eq.IsValid() {
			return fmt.Errorf("%w: unknown equipment [%s]", ErrInvalidRequest, eq)
		}
	}
	return nil
}

func equipmentList(equipment []fitness.Equipment) string {
	names := make([]string, 0, len(equipment))
	for _, eq := range equipment {
		names = append(names, eq.String())
	}
	return strings.Join(names, ", ")
}

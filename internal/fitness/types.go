package fitness

// Difficulty can be one of:
//   - Beginner
//   - Intermediate
//   - Advanced
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyAdvanced     Difficulty = "Advanced"
)

func (d Difficulty) String() string {
	return string(d)
}

func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyBeginner,
		DifficultyIntermediate,
		DifficultyAdvanced:
		return true
	default:
		return false
	}
}

type Equipment string

const (
	EquipmentBodyweight      Equipment = "Bodyweight"
	EquipmentDumbbells       Equipment = "Dumbbells"
	EquipmentBarbell         Equipment = "Barbell"
	EquipmentResistanceBands Equipment = "Resistance Bands"
	EquipmentFullGym         Equipment = "Full Gym"
)

func (e Equipment) String() string {
	return string(e)
}

func (e Equipment) IsValid() bool {
	switch e {
	case EquipmentBodyweight,
		EquipmentDumbbells,
		EquipmentBarbell,
		EquipmentResistanceBands,
		EquipmentFullGym:
		return true
	default:
		return false
	}
}

type MuscleGroup string

const (
	MuscleGroupFullBody  MuscleGroup = "Full Body"
	MuscleGroupChest     MuscleGroup = "Chest"
	MuscleGroupBack      MuscleGroup = "Back"
	MuscleGroupLegs      MuscleGroup = "Legs"
	MuscleGroupArms      MuscleGroup = "Arms"
	MuscleGroupShoulders MuscleGroup = "Shoulders"
	MuscleGroupCore      MuscleGroup = "Core"
)

var allMuscleGroups = []MuscleGroup{
	MuscleGroupFullBody,
	MuscleGroupChest,
	MuscleGroupBack,
	MuscleGroupLegs,
	MuscleGroupArms,
	MuscleGroupShoulders,
	MuscleGroupCore,
}

// AllMuscleGroups returns a copy of the muscle groups, in declaration order.
func AllMuscleGroups() []MuscleGroup {
	groups := make([]MuscleGroup, len(allMuscleGroups))
	copy(groups, allMuscleGroups)
	return groups
}

func (m MuscleGroup) String() string {
	return string(m)
}

func (m MuscleGroup) IsValid() bool {
	for _, mg := range allMuscleGroups {
		if m == mg {
			return true
		}
	}
	return false
}

package generator

import (
	"encoding/json"
	"fmt"

	"github.com/2beens/ironai/internal/fitness"
)

const planSystemInstruction = `You are an expert strength and conditioning coach.
Create a complete workout plan for a single session.

RULES:
1. "exercises" must contain between 4 and 7 exercises, ordered as they should be performed.
2. "sets" is a whole number greater than zero.
3. "reps" is a number or a range, e.g. "12" or "8-12".
4. "weight" is a concrete suggestion appropriate for the equipment (e.g. "20kg", "40lbs", "Bodyweight").
5. Only use exercises that are possible with the provided equipment.`

const rouletteSystemInstruction = `You are a hardcore fitness roulette generator.
Create a "Single Exercise Challenge" workout.
The workout plan must contain EXACTLY ONE exercise.
Do not generate a full routine. Just one specific exercise challenge.

CRITICAL RULES:
1. "exercises" array length must be exactly 1.
2. "sets": Choose a random number between 3 and 10.
3. "reps": Choose a specific random number strictly between 1 and 50 (e.g. "5", "12", "45"). Do NOT exceed 50. Do NOT provide a range.
4. "weight": Choose a specific random weight appropriate for the equipment (e.g. "20kg", "40lbs", "Bodyweight"). Do not say "Moderate".
5. Ensure the exercise is possible with the provided equipment.`

func planPrompt(req PlanRequest) string {
	return fmt.Sprintf(
		"Generate a %s level workout plan for %s using %s.\nThe title should name the session and the description should summarize its focus.",
		req.Difficulty, req.TargetMuscle, equipmentList(req.Equipment),
	)
}

func roulettePrompt(req RouletteRequest) string {
	return fmt.Sprintf(
		"Generate a %s level single-exercise challenge for %s using %s.\n"+
			`Examples of challenges: "10 Sets of 10 Squats", "45 Pushups for time", "Heavy Deadlift 5x3".`+"\n"+
			"The title should be the name of this specific challenge.",
		req.Difficulty, req.TargetMuscle, equipmentList(req.Equipment),
	)
}

const tipSessionsContext = 3

func tipPrompt(history []fitness.SessionRecord) string {
	recent := history
	if len(recent) > tipSessionsContext {
		recent = recent[len(recent)-tipSessionsContext:]
	}
	summary, err := json.Marshal(recent)
	if err != nil {
		summary = []byte("[]")
	}
	return fmt.Sprintf(
		"Based on the last %d workouts (summarized here: %s), give me one specific tip for progressive overload for the next session. Keep it under 20 words.",
		len(recent), summary,
	)
}

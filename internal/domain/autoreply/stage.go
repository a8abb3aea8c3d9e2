package autoreply

// Stage is a state of one reply pipeline run.
type Stage string

const (
	StageInit              Stage = "INIT"
	StageTypingOn          Stage = "TYPING_ON"
	StageLoadingConfig     Stage = "LOADING_CONFIG"
	StageFetchingHistory   Stage = "FETCHING_HISTORY"
	StageRetrievingContext Stage = "RETRIEVING_CONTEXT"
	StageBuildingPrompt    Stage = "BUILDING_PROMPT"
	StageInvokingInference Stage = "INVOKING_INFERENCE"
	StageDispatchingReply  Stage = "DISPATCHING_REPLY"
	StageMarkingRead       Stage = "MARKING_READ"
	StageLoggingSuccess    Stage = "LOGGING_SUCCESS"
	StageEmittingErrorNote Stage = "EMITTING_ERROR_NOTE"
	StageLoggingError      Stage = "LOGGING_ERROR"
	StageTypingOff         Stage = "TYPING_OFF"
)

// failable stages may divert to the error branch.
var failable = []Stage{
	StageLoadingConfig,
	StageFetchingHistory,
	StageRetrievingContext,
	StageBuildingPrompt,
	StageInvokingInference,
	StageDispatchingReply,
	StageMarkingRead,
}

// ValidTransitions lists the forward edges of the pipeline.
// Every non-terminal stage may also jump to TYPING_OFF and every failable stage to EMITTING_ERROR_NOTE.
var ValidTransitions = map[Stage][]Stage{
	StageInit:              {StageTypingOn},
	StageTypingOn:          {StageLoadingConfig},
	StageLoadingConfig:     {StageFetchingHistory},
	StageFetchingHistory:   {StageRetrievingContext, StageBuildingPrompt},
	StageRetrievingContext: {StageBuildingPrompt},
	StageBuildingPrompt:    {StageInvokingInference},
	StageInvokingInference: {StageDispatchingReply},
	StageDispatchingReply:  {StageMarkingRead},
	StageMarkingRead:       {StageLoggingSuccess},
	StageLoggingSuccess:    {},
	StageEmittingErrorNote: {StageLoggingError},
	StageLoggingError:      {},
	StageTypingOff:         {},
}

// IsTerminal reports whether no transition leaves s.
func (s Stage) IsTerminal() bool {
	return s == StageTypingOff
}

func (s Stage) String() string {
	return string(s)
}

// CanTransition reports whether the pipeline may move from one stage to another.
func CanTransition(from, to Stage) bool {
	if from.IsTerminal() {
		return false
	}
	if to == StageTypingOff {
		return true
	}
	if to == StageEmittingErrorNote {
		for _, s := range failable {
			if s == from {
				return true
			}
		}
		return false
	}
	for _, next := range ValidTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

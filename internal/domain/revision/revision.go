// Package revision holds the Revision entity and its lifecycle state
// machine (§4.3): Unverified/Verifying/Running/Stopped, driven by user
// actions and scheduler MQ messages.
package revision

// Status is a revision's lifecycle state.
type Status string

const (
	Unverified Status = "Unverified"
	Verifying  Status = "Verifying"
	Running    Status = "Running"
	Stopped    Status = "Stopped"
)

// Health is the last-observed operating condition of a running/stopped
// revision, independent of Status.
type Health string

const (
	HealthOk      Health = "Ok"
	HealthWarning Health = "Warning"
	HealthError   Health = "Error"
)

// Error is a code+message pair attached to a failed upload or a scheduler
// feedback event.
type Error struct {
	Code    string `bson:"code" json:"code"`
	Message string `bson:"message" json:"message"`
}

// Event is a single scheduler/agent-reported occurrence carried in Feedback.
type Event struct {
	Code    string  `bson:"code" json:"code"`
	Message string  `bson:"message" json:"message"`
	Details *string `bson:"details,omitempty" json:"details,omitempty"`
}

// Feedback is the last status report the scheduler attached to a revision
// (FuzzerStopped/FuzzerStatusChanged), distinguishing the scheduler's own
// event from one forwarded on behalf of the fuzzing agent inside the pod.
type Feedback struct {
	Scheduler Event  `bson:"scheduler" json:"scheduler"`
	Agent     *Event `bson:"agent,omitempty" json:"agent,omitempty"`
}

// UploadStatus tracks one of the three upload slots (binaries/seeds/config).
type UploadStatus struct {
	Uploaded  bool   `bson:"uploaded" json:"uploaded"`
	LastError *Error `bson:"last_error,omitempty" json:"last_error,omitempty"`
}

// Revision is a concrete, versioned snapshot of a fuzzer: binaries, seed
// corpus, config, resource limits, and the lifecycle state driving the
// scheduler.
type Revision struct {
	ID              string       `bson:"_id" json:"id"`
	Name            string       `bson:"name" json:"name"`
	Description     string       `bson:"description" json:"description"`
	Binaries        UploadStatus `bson:"binaries" json:"binaries"`
	Seeds           UploadStatus `bson:"seeds" json:"seeds"`
	Config          UploadStatus `bson:"config" json:"config"`
	Status          Status       `bson:"status" json:"status"`
	Health          Health       `bson:"health" json:"health"`
	Feedback        *Feedback    `bson:"feedback,omitempty" json:"feedback,omitempty"`
	FuzzerID        string       `bson:"fuzzer_id" json:"fuzzer_id"`
	ImageID         string       `bson:"image_id" json:"image_id"`
	IsVerified      bool         `bson:"is_verified" json:"is_verified"`
	Created         string       `bson:"created" json:"created"`
	LastStartDate   *string      `bson:"last_start_date,omitempty" json:"last_start_date,omitempty"`
	LastStopDate    *string      `bson:"last_stop_date,omitempty" json:"last_stop_date,omitempty"`
	CPUUsage        int          `bson:"cpu_usage" json:"cpu_usage"`
	RAMUsage        int          `bson:"ram_usage" json:"ram_usage"`
	TmpfsSize       int          `bson:"tmpfs_size" json:"tmpfs_size"`
	ErasureDate     *string      `bson:"erasure_date,omitempty" json:"erasure_date,omitempty"`
	NoBackup        bool         `bson:"no_backup" json:"no_backup"`
}

// EditableFiles reports whether binaries/seeds/config may be (re)uploaded:
// only in Unverified (§3 invariant).
func (r Revision) EditableFiles() bool {
	return r.Status == Unverified
}

// CanStart reports whether a plain *start* action is admissible from the
// current state (§4.3 transition table): Unverified or Stopped only. It
// does not check the out-of-state-machine preconditions (pool present,
// binaries uploaded, resource limits) — those are evaluated by the service
// layer against project/pool/image data this package doesn't have.
func (r Revision) CanStart() bool {
	switch r.Status {
	case Unverified, Stopped:
		return true
	case Verifying, Running:
		return false
	default:
		return false
	}
}

// AlreadyRunning reports the 409 E_REVISION_ALREADY_RUNNING case.
func (r Revision) AlreadyRunning() bool {
	return r.Status == Running
}

// OnlyRestartable reports the 409 E_REVISION_CAN_ONLY_RESTART case: health
// is Error and the revision isn't simply Unverified (§4.3 table last row).
func (r Revision) OnlyRestartable() bool {
	return r.Health == HealthError && r.Status != Unverified
}

// CanStop reports whether a *stop* action applies (§4.3): Verifying or
// Running only.
func (r Revision) CanStop() bool {
	return r.Status == Verifying || r.Status == Running
}

// StopTarget is the Status a *stop* action transitions to, given the
// current Status (§4.3: Verifying→Unverified, Running→Stopped).
func (r Revision) StopTarget() Status {
	if r.Status == Verifying {
		return Unverified
	}

	return Stopped
}

// RestartTarget is the Status a *restart* action transitions to: Verifying
// if not yet verified, Running otherwise (§4.3).
func (r Revision) RestartTarget() Status {
	if !r.IsVerified {
		return Verifying
	}

	return Running
}

// ComputeHealth recomputes health after an upload completes, per §4.3: Ok
// iff binaries uploaded and (seeds uploaded or never attempted) and (config
// uploaded or never attempted); Error otherwise. "Never attempted" means the
// slot has no LastError recorded either — i.e. it simply hasn't been used.
func ComputeHealth(binaries, seeds, config UploadStatus) Health {
	seedsOk := seeds.Uploaded || (!seeds.Uploaded && seeds.LastError == nil)
	configOk := config.Uploaded || (!config.Uploaded && config.LastError == nil)

	if binaries.Uploaded && seedsOk && configOk {
		return HealthOk
	}

	return HealthError
}

// CreateInput is the request payload for creating a revision.
type CreateInput struct {
	Description string `json:"description" validate:"max=500"`
	ImageID     string `json:"image_id" validate:"required"`
	CPUUsage    int    `json:"cpu_usage" validate:"required,min=1"`
	RAMUsage    int    `json:"ram_usage" validate:"required,min=1"`
	TmpfsSize   int    `json:"tmpfs_size" validate:"min=0"`
}

// ResourcesInput is the PATCH payload for live resource updates.
type ResourcesInput struct {
	CPUUsage  *int `json:"cpu_usage,omitempty"`
	RAMUsage  *int `json:"ram_usage,omitempty"`
	TmpfsSize *int `json:"tmpfs_size,omitempty"`
}

// CopyCorpusInput is the PUT payload for the corpus-copy endpoint.
type CopyCorpusInput struct {
	SrcRevID string `json:"src_rev_id" validate:"required"`
}

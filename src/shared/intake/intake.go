package intake

import (
	"github.com/apex/log"
	"github.com/cockroachdb/errors"
	"github.com/veedubyou/split-studio/src/shared/split/entity"
)

const (
	// PickerAccept is the accept filter handed to file pickers
	PickerAccept = "audio/*"

	// AdvisoryMaxSize is shown to users as guidance only, nothing enforces it
	AdvisoryMaxSize = 50 * 1024 * 1024
)

type Outcome string

const (
	Submitted Outcome = "submitted"
	Rejected  Outcome = "rejected"
	Disabled  Outcome = "disabled"
	NoFile    Outcome = "no_file"
)

type SubmitFunc func(file splitentity.UploadedFile) error

type Intake struct {
	submit     SubmitFunc
	isDisabled func() bool
}

func New(submit SubmitFunc, isDisabled func() bool) Intake {
	if isDisabled == nil {
		isDisabled = func() bool { return false }
	}

	return Intake{
		submit:     submit,
		isDisabled: isDisabled,
	}
}

// Drop takes the first dropped file and only submits it when it's declared
// as audio. Anything else is ignored without an error.
func (i Intake) Drop(files []splitentity.UploadedFile) (Outcome, error) {
	if len(files) == 0 {
		return NoFile, nil
	}

	file := files[0]
	if !file.IsAudio() {
		log.WithFields(log.Fields{
			"file_name":  file.Name,
			"media_type": file.MediaType,
		}).Debug("Ignoring dropped file that isn't audio")
		return Rejected, nil
	}

	return i.Submit(file)
}

// Pick takes the first picked file. The picker's accept filter is the only
// type check on this path.
func (i Intake) Pick(files []splitentity.UploadedFile) (Outcome, error) {
	if len(files) == 0 {
		return NoFile, nil
	}

	return i.Submit(files[0])
}

func (i Intake) Submit(file splitentity.UploadedFile) (Outcome, error) {
	if i.isDisabled() {
		log.WithField("file_name", file.Name).
			Debug("Ignoring submission while intake is disabled")
		return Disabled, nil
	}

	if err := i.submit(file); err != nil {
		return "", errors.Wrap(err, "Failed to submit file")
	}

	return Submitted, nil
}

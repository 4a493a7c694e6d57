package components

// BucketPickedMsg is sent when the operator chooses a bucket in the picker.
type BucketPickedMsg struct {
	Code   string
	Bucket string
}

// PickCanceledMsg is sent when the picker is dismissed.
type PickCanceledMsg struct{}

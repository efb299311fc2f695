package universe

// EncodeFrame renders a universe as a DMX512 wire frame.
//
// The frame is always 513 bytes: the null start code followed by the
// level of channels 1 through 512 in order. Channels never written
// encode as zero, so a fresh universe produces a valid blackout frame.
//
// Encoding requires a connected universe; a universe that cannot drive
// output has no frame to send, so disconnected and unknown IDs both
// return ErrUniverseNotFound.
func (r *Registry) EncodeFrame(universeID string) ([]byte, error) {
	store, err := r.connectedStore(universeID)
	if err != nil {
		return nil, err
	}

	snapshot := store.Snapshot()

	frame := make([]byte, FrameSize)
	frame[0] = StartCode
	copy(frame[1:], snapshot[:])
	return frame, nil
}

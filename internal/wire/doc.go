package wire

// Wire ambiguity: both message shapes on the updates channel begin
// with a u32 that looks like a length (a text message's byte count,
// an image frame's total_len). The downstream gateway tells them
// apart by frame type at the transport it wraps this channel in, not
// by any field defined here — that transport is outside this
// package's scope. Decode and Sniff below exist only so this package
// can round-trip its own writes in tests; they are not used by the
// bridge at runtime, which only ever writes to this channel.

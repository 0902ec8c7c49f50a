// Package buffer
// Author: momentics <momentics@gmail.com>
//
// Write-side buffering primitives for non-blocking stream transports.
// BufferVec is a fixed-capacity byte region with a filled/unfilled
// split; WriteBuffer layers an ordered backlog of BufferVec segments on
// top of any api.Sink, guaranteeing that every byte handed to it is
// either transmitted or retained in order without blocking the caller.
// All types are single-owner: one instance per connection, no internal
// synchronization.
package buffer

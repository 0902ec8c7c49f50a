// Package container
// Author: momentics <momentics@gmail.com>
//
// Generic bounded containers sharing the buffering layer's design
// idiom: fixed or explicitly-grown storage, cursor arithmetic, no
// internal synchronization.
package container

// Package pipeline turns a user-level memory operation (dump, erase, write,
// commit, reset) into the sequence of control-transfer calls the §4.6 host
// page pipeline describes. It is the direct descendant of the teacher's
// bootloader.Programmer: the same functional-options configuration, the same
// progress/logging seams, restructured around page/NVRAM operations instead
// of a single cyacd Program() sequence.
package pipeline

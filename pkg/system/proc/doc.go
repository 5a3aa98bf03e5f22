// Package proc is the OS metrics provider. It wraps gopsutil to expose the
// few host capabilities the monitor consumes:
//
//   - logical core count (NumCPU)
//   - resident memory of the monitor's own process (ProcessMemory)
//   - system total and available physical memory (Memory)
//   - per-partition capacity with a ready flag (Volumes)
//   - process enumeration with lazily read name/memory (Processes)
//   - cumulative processor time of any pid (CPUTime)
//
// Every call is synchronous and may fail. Failures on a single process are
// wrapped with types.ErrProcessUnavailable so callers can skip the item;
// a partition whose usage cannot be read is returned with Ready=false
// instead of an error.
package proc

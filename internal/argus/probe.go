package argus

import (
	"github.com/shirou/gopsutil/v3/process"
	"strings"
)

const DefaultProcessName = "ArgusMonitor.exe"

// IsMonitorRunning reports whether a process with the given executable name exists
func IsMonitorRunning(name string) (bool, error) {
	processes, err := process.Processes()
	if err != nil {
		return false, err
	}
	for _, p := range processes {
		processName, err := p.Name()
		if err != nil {
			// process vanished or is not accessible
			continue
		}
		if strings.EqualFold(processName, name) {
			return true, nil
		}
	}
	return false, nil
}

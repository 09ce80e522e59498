package benchmarks

import (
	"fmt"
	"log"
	"os"
	"path"
	"runtime"
	"runtime/pprof"
)

// startProfiling starts the cpu profile when requested.
// The returned function stops it and writes the memory profile.
func startProfiling() func() {
	if cpuprofile != "" || memprofile != "" {
		if err := os.MkdirAll(saveFile, 0755); err != nil {
			log.Fatal("could not create the save folder: ", err)
		}
	}

	var cpuFile *os.File
	if cpuprofile != "" {
		cpuProfPath := path.Join(saveFile, cpuprofile)
		fmt.Println("Profiling CPU to ", cpuProfPath)
		f, err := os.Create(cpuProfPath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		cpuFile = f
	}

	return func() {
		if cpuFile != nil {
			pprof.StopCPUProfile()
			cpuFile.Close()
		}

		if memprofile != "" {
			memProfPath := path.Join(saveFile, memprofile)
			fmt.Println("Profiling Memory to ", memProfPath)
			f, err := os.Create(memProfPath)
			if err != nil {
				log.Fatal("could not create memory profile: ", err)
			}
			defer f.Close()
			runtime.GC() // get up-to-date statistics
			if err := pprof.WriteHeapProfile(f); err != nil {
				log.Fatal("could not write memory profile: ", err)
			}
		}
	}
}

package cleanup

import (
	"log"
	"sync"
)

type Job struct {
	Name string
	F    func() error
}

var (
	mu   sync.Mutex
	jobs []*Job
)

func Register(j *Job) {
	mu.Lock()
	defer mu.Unlock()
	jobs = append(jobs, j)
}

// CleanUp runs registered jobs in reverse registration order.
func CleanUp() {
	mu.Lock()
	defer mu.Unlock()
	for i := len(jobs) - 1; i >= 0; i-- {
		j := jobs[i]
		log.Printf("Cleanup job %s started...", j.Name)
		err := j.F()
		if err != nil {
			log.Printf("Job finished with error: %v", err)
		} else {
			log.Println("Cleaned")
		}
	}
	jobs = nil
}

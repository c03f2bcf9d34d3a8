package futexonce_test

import (
	"fmt"

	"github.com/joeycumines/go-futexonce"
)

func ExampleOnce() {
	var once futexonce.Once
	for range 3 {
		once.Do(func() {
			fmt.Println(`initialized`)
		})
	}
	fmt.Println(`completed:`, once.IsCompleted())

	//output:
	//initialized
	//completed: true
}

func ExampleOnce_poisoned() {
	once := futexonce.New()

	func() {
		defer func() {
			fmt.Println(`first call:`, recover())
		}()
		once.Do(func() {
			panic(`failed to connect`)
		})
	}()

	func() {
		defer func() {
			fmt.Println(`second call poisoned:`, futexonce.IsPoisoned(recover()))
		}()
		once.Do(func() {
			fmt.Println(`never printed`)
		})
	}()

	fmt.Println(`completed:`, once.IsCompleted())

	//output:
	//first call: failed to connect
	//second call poisoned: true
	//completed: false
}

func ExampleOnceValue() {
	fib := futexonce.OnceValue(func() int64 {
		fmt.Println(`computing`)
		var a, b int64 = 0, 1
		for range 50 {
			a, b = b, a+b
		}
		return a
	})
	fmt.Println(fib())
	fmt.Println(fib())

	//output:
	//computing
	//12586269025
	//12586269025
}

// Package handlers содержит HTTP-обработчики поверх gin.
package handlers

import "github.com/gin-gonic/gin"

// RegisterRoutes привязывает все обработчики к маршрутам API
func RegisterRoutes(r *gin.Engine, courses *CourseHandler, tasks *TaskHandler, students *StudentHandler, activities *ActivityHandler) {
	api := r.Group("/api")
	{
		api.POST("/course", courses.CreateCourse)
		api.GET("/courses", courses.ListCourses)
		api.GET("/course/:id", courses.GetCourse)
		api.PUT("/course/:id", courses.UpdateCourse)
		api.DELETE("/course/:id", courses.DeleteCourse)

		api.POST("/task", tasks.CreateTask)
		api.GET("/tasks", tasks.ListTasks)
		api.GET("/task/:id", tasks.GetTask)
		api.PUT("/task/:id", tasks.UpdateTask)
		api.DELETE("/task/:id", tasks.DeleteTask)

		api.POST("/student", students.CreateStudent)
		api.GET("/students", students.ListStudents)
		api.GET("/student/:id", students.GetStudent)
		api.PUT("/student/:id", students.UpdateStudent)
		api.DELETE("/student/:id", students.DeleteStudent)

		api.POST("/activity", activities.CreateActivity)
		api.GET("/activities", activities.ListActivities)
		api.GET("/activity/:id", activities.GetActivity)
		api.PUT("/activity/:id", activities.UpdateActivity)
		api.DELETE("/activity/:id", activities.DeleteActivity)
		api.PATCH("/activity/:id/start", activities.StartActivity)
		api.PATCH("/activity/:id/finish", activities.FinishActivity)
	}
}

package service

import (
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

type CourseService struct {
	CourseRepo *repository.CourseRepository
	ModuleRepo *repository.ModuleRepository
	LessonRepo *repository.LessonRepository
}

func NewCourseService(
	courseRepo *repository.CourseRepository,
	moduleRepo *repository.ModuleRepository,
	lessonRepo *repository.LessonRepository,
) *CourseService {
	return &CourseService{
		CourseRepo: courseRepo,
		ModuleRepo: moduleRepo,
		LessonRepo: lessonRepo,
	}
}

func (s *CourseService) CreateCourse(course *model.Course) error {
	return s.CourseRepo.Create(course)
}

func (s *CourseService) GetCourse(id uint) (*model.CourseDetail, error) {
	detail, err := s.CourseRepo.FindDetail(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	return detail, nil
}

// GetCourseOwner returns the instructor id for ownership checks.
func (s *CourseService) GetCourseOwner(id uint) (uint, error) {
	course, err := s.CourseRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, util.ErrCourseNotFound
		}
		return 0, err
	}
	return course.InstructorID, nil
}

func (s *CourseService) ListCourses(publishedOnly bool) ([]model.CourseDetail, error) {
	return s.CourseRepo.List(publishedOnly)
}

func (s *CourseService) ListByInstructor(instructorID uint) ([]model.Course, error) {
	return s.CourseRepo.ListByInstructor(instructorID)
}

func (s *CourseService) UpdateCourse(id uint, update model.CourseUpdate) (*model.CourseDetail, error) {
	if _, err := s.GetCourse(id); err != nil {
		return nil, err
	}
	if err := s.CourseRepo.Update(id, update); err != nil {
		return nil, err
	}
	return s.GetCourse(id)
}

func (s *CourseService) DeleteCourse(id uint) error {
	deleted, err := s.CourseRepo.DeleteCascade(id)
	if err != nil {
		return err
	}
	if !deleted {
		return util.ErrCourseNotFound
	}
	return nil
}

// GetCurriculum returns the course's modules with their lessons in display
// order.
func (s *CourseService) GetCurriculum(courseID uint) ([]ModuleWithLessons, error) {
	if _, err := s.GetCourse(courseID); err != nil {
		return nil, err
	}
	modules, err := s.ModuleRepo.ListByCourse(courseID)
	if err != nil {
		return nil, err
	}
	curriculum := make([]ModuleWithLessons, 0, len(modules))
	for _, m := range modules {
		lessons, err := s.LessonRepo.ListByModule(m.ID)
		if err != nil {
			return nil, err
		}
		curriculum = append(curriculum, ModuleWithLessons{Module: m, Lessons: lessons})
	}
	return curriculum, nil
}

type ModuleWithLessons struct {
	model.Module
	Lessons []model.Lesson `json:"lessons"`
}

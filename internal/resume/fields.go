package resume

import "fmt"

func setExperienceField(e *Experience, field string, value any) error {
	if field == "current" {
		v, ok := value.(bool)
		if !ok {
			return wrongType(SectionExperience, field, "boolean")
		}
		e.Current = v
		return nil
	}

	s, ok := value.(string)
	if !ok {
		if isExperienceStringField(field) {
			return wrongType(SectionExperience, field, "string")
		}
		return unknownField(SectionExperience, field)
	}

	switch field {
	case "title":
		e.Title = s
	case "company":
		e.Company = s
	case "location":
		e.Location = s
	case "startDate":
		e.StartDate = s
	case "endDate":
		if e.Current {
			return &ValidationError{Field: field, Message: "end date cannot be edited while the position is current"}
		}
		e.EndDate = s
	case "description":
		e.Description = s
	default:
		return unknownField(SectionExperience, field)
	}
	return nil
}

func isExperienceStringField(field string) bool {
	switch field {
	case "title", "company", "location", "startDate", "endDate", "description":
		return true
	}
	return false
}

func setEducationField(e *Education, field string, value any) error {
	s, ok := value.(string)
	switch field {
	case "degree", "school", "location", "graduationDate", "gpa":
		if !ok {
			return wrongType(SectionEducation, field, "string")
		}
	default:
		return unknownField(SectionEducation, field)
	}

	switch field {
	case "degree":
		e.Degree = s
	case "school":
		e.School = s
	case "location":
		e.Location = s
	case "graduationDate":
		e.GraduationDate = s
	case "gpa":
		e.GPA = s
	}
	return nil
}

func setSkillField(sk *Skill, field string, value any) error {
	s, ok := value.(string)
	switch field {
	case "name", "level":
		if !ok {
			return wrongType(SectionSkills, field, "string")
		}
	default:
		return unknownField(SectionSkills, field)
	}

	if field == "name" {
		sk.Name = s
	} else {
		sk.Level = SkillLevel(s)
	}
	return nil
}

func unknownField(section Section, field string) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf("unknown %s field", section)}
}

func wrongType(section Section, field, want string) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf("%s field must be a %s", section, want)}
}

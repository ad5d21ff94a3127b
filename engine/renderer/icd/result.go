package icd

import (
	"errors"

	vk "github.com/goki/vulkan"
	"github.com/spaghettifunk/dset/engine/core"
)

// ResultFromError maps an error returned by this package to the closest
// Vulkan result code.
func ResultFromError(err error) vk.Result {
	switch {
	case err == nil:
		return vk.Success
	case errors.Is(err, core.ErrOutOfMemory):
		return vk.ErrorOutOfHostMemory
	case errors.Is(err, core.ErrInvalidObject), errors.Is(err, core.ErrObjectDestroyed):
		return vk.ErrorInitializationFailed
	default:
		return vk.ErrorUnknown
	}
}

func ResultString(result vk.Result, getExtended bool) string {
	// From: https://www.khronos.org/registry/vulkan/specs/1.3-extensions/man/html/VkResult.html
	switch result {
	case vk.Success:
		return conditionalOperator(!getExtended, "VK_SUCCESS", "VK_SUCCESS Command successfully completed")
	case vk.ErrorOutOfHostMemory:
		return conditionalOperator(!getExtended, "VK_ERROR_OUT_OF_HOST_MEMORY", "VK_ERROR_OUT_OF_HOST_MEMORY A host memory allocation has failed.")
	case vk.ErrorOutOfDeviceMemory:
		return conditionalOperator(!getExtended, "VK_ERROR_OUT_OF_DEVICE_MEMORY", "VK_ERROR_OUT_OF_DEVICE_MEMORY A device memory allocation has failed.")
	case vk.ErrorInitializationFailed:
		return conditionalOperator(!getExtended, "VK_ERROR_INITIALIZATION_FAILED", "VK_ERROR_INITIALIZATION_FAILED Initialization of an object could not be completed for implementation-specific reasons.")
	case vk.ErrorTooManyObjects:
		return conditionalOperator(!getExtended, "VK_ERROR_TOO_MANY_OBJECTS", "VK_ERROR_TOO_MANY_OBJECTS Too many objects of the type have already been created.")
	default:
		return conditionalOperator(!getExtended, "VK_ERROR_UNKNOWN", "VK_ERROR_UNKNOWN An unknown error has occurred; either the application has provided invalid input, or an implementation failure has occurred.")
	}
}

func conditionalOperator(condition bool, res1, res2 string) string {
	if condition {
		return res1
	}
	return res2
}
